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

const userStatsCollectionName = "userstats"

type UserStatsMongoRepository struct {
	db *mongo.Database
}

func NewUserStatsMongoRepository(client *mongo.Client, dbName string) *UserStatsMongoRepository {
	return &UserStatsMongoRepository{db: client.Database(dbName)}
}

func (r *UserStatsMongoRepository) collection() *mongo.Collection {
	return r.db.Collection(userStatsCollectionName)
}

func (r *UserStatsMongoRepository) Create(ctx context.Context, s *entity.UserStats) (string, error) {
	s.CreatedAt = time.Now()
	if s.Badges == nil {
		s.Badges = []entity.Badge{}
	}

	doc, err := toUserStatsDocument(s)
	if err != nil {
		return "", err
	}

	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create user stats in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID for user stats")
	}
	return insertedID.Hex(), nil
}

func (r *UserStatsMongoRepository) GetByID(ctx context.Context, id string) (*entity.UserStats, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc userStatsDocument
	err = r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user stats by id from mongo: %w", err)
	}
	return toUserStatsEntity(&doc), nil
}

func (r *UserStatsMongoRepository) List(ctx context.Context) ([]*entity.UserStats, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list user stats from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userStatsDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode user stats list from mongo: %w", err)
	}

	stats := make([]*entity.UserStats, len(docs))
	for i := range docs {
		stats[i] = toUserStatsEntity(&docs[i])
	}
	return stats, nil
}

func (r *UserStatsMongoRepository) Update(ctx context.Context, id string, totalDonations, totalClaims int, badges []entity.Badge) (*entity.UserStats, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	badgeDocs := make([]badgeDocument, 0, len(badges))
	for _, b := range badges {
		badgeDocs = append(badgeDocs, badgeDocument{Title: b.Title})
	}

	update := bson.M{"$set": bson.M{
		"totalDonations": totalDonations,
		"totalClaims":    totalClaims,
		"badges":         badgeDocs,
	}}

	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userStatsDocument
	err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, findOptions).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user stats in mongo: %w", err)
	}
	return toUserStatsEntity(&doc), nil
}

func (r *UserStatsMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete user stats from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
