package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reservationCollectionName = "reservations"

type ReservationMongoRepository struct {
	db *mongo.Database
}

func NewReservationMongoRepository(client *mongo.Client, dbName string) *ReservationMongoRepository {
	return &ReservationMongoRepository{db: client.Database(dbName)}
}

func (r *ReservationMongoRepository) collection() *mongo.Collection {
	return r.db.Collection(reservationCollectionName)
}

func (r *ReservationMongoRepository) Create(ctx context.Context, res *entity.Reservation) (string, error) {
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now
	if res.Status == "" {
		res.Status = entity.StatusReserved
	}

	doc, err := toReservationDocument(res)
	if err != nil {
		return "", err
	}

	inserted, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create reservation in mongo: %w", err)
	}

	insertedID, ok := inserted.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID for reservation")
	}
	return insertedID.Hex(), nil
}

func (r *ReservationMongoRepository) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc reservationDocument
	err = r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by id from mongo: %w", err)
	}
	return toReservationEntity(&doc), nil
}

func (r *ReservationMongoRepository) List(ctx context.Context) ([]*entity.Reservation, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reservation list from mongo: %w", err)
	}

	reservations := make([]*entity.Reservation, len(docs))
	for i := range docs {
		reservations[i] = toReservationEntity(&docs[i])
	}
	return reservations, nil
}

func (r *ReservationMongoRepository) Update(ctx context.Context, res *entity.Reservation) (*entity.Reservation, error) {
	objID, err := primitive.ObjectIDFromHex(res.ID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	foodID, err := objectIDFromHex(res.FoodID)
	if err != nil {
		return nil, err
	}
	userID, err := objectIDFromHex(res.UserID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"food":      foodID,
		"user":      userID,
		"location":  res.Location,
		"dateTime":  res.DateTime,
		"quantity":  res.Quantity,
		"status":    string(res.Status),
		"updatedAt": time.Now(),
	}}

	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc reservationDocument
	err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, findOptions).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update reservation in mongo: %w", err)
	}
	return toReservationEntity(&doc), nil
}

func (r *ReservationMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete reservation from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
