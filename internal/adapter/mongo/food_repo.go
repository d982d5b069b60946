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

const foodCollectionName = "foods"

type FoodMongoRepository struct {
	db *mongo.Database
}

func NewFoodMongoRepository(client *mongo.Client, dbName string) *FoodMongoRepository {
	return &FoodMongoRepository{db: client.Database(dbName)}
}

func (r *FoodMongoRepository) collection() *mongo.Collection {
	return r.db.Collection(foodCollectionName)
}

func (r *FoodMongoRepository) Create(ctx context.Context, food *entity.Food) (string, error) {
	now := time.Now()
	food.CreatedAt = now
	food.UpdatedAt = now
	if food.Comments == nil {
		food.Comments = []entity.Comment{}
	}

	doc, err := toFoodDocument(food)
	if err != nil {
		return "", err
	}

	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create food in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID for food")
	}
	return insertedID.Hex(), nil
}

func (r *FoodMongoRepository) GetByID(ctx context.Context, id string) (*entity.Food, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc foodDocument
	err = r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get food by id from mongo: %w", err)
	}
	return toFoodEntity(&doc), nil
}

func (r *FoodMongoRepository) List(ctx context.Context) ([]*entity.Food, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list foods from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []foodDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode food list from mongo: %w", err)
	}

	foods := make([]*entity.Food, len(docs))
	for i := range docs {
		foods[i] = toFoodEntity(&docs[i])
	}
	return foods, nil
}

// ListExpiringAfter filters server-side on the expiry timestamp. An empty
// result is reported as ErrNotFound, matching the route contract.
func (r *FoodMongoRepository) ListExpiringAfter(ctx context.Context, t time.Time) ([]*entity.Food, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "expiresAt", Value: 1}})

	cursor, err := r.collection().Find(ctx, bson.M{"expiresAt": bson.M{"$gte": t}}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods by expiry from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []foodDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode food list from mongo: %w", err)
	}
	if len(docs) == 0 {
		return nil, repository.ErrNotFound
	}

	foods := make([]*entity.Food, len(docs))
	for i := range docs {
		foods[i] = toFoodEntity(&docs[i])
	}
	return foods, nil
}

func (r *FoodMongoRepository) Update(ctx context.Context, id string, upd repository.FoodUpdate) (*entity.Food, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Quantity != nil {
		set["quantity"] = *upd.Quantity
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Location != nil {
		set["location"] = toGeoPointDocument(upd.Location)
	}
	if upd.ImageURL != nil {
		set["imageURL"] = *upd.ImageURL
	}
	if upd.IsUrgent != nil {
		set["isUrgent"] = *upd.IsUrgent
	}
	if upd.DietryRestric != nil {
		set["dietryRestric"] = *upd.DietryRestric
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Unit != nil {
		set["unit"] = *upd.Unit
	}
	if upd.ExpiresAt != nil {
		set["expiresAt"] = *upd.ExpiresAt
	}

	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc foodDocument
	err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, findOptions).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update food in mongo: %w", err)
	}
	return toFoodEntity(&doc), nil
}

func (r *FoodMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete food from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddComment appends to the embedded comment array. This is read-modify-write
// against a single document; concurrent comment mutations on the same listing
// are last-write-wins.
func (r *FoodMongoRepository) AddComment(ctx context.Context, foodID string, comment entity.Comment) (*entity.Food, error) {
	objID, err := primitive.ObjectIDFromHex(foodID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	doc, err := toCommentDocument(comment)
	if err != nil {
		return nil, err
	}

	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$push": bson.M{"comments": doc},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	var updated foodDocument
	err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, findOptions).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to add comment in mongo: %w", err)
	}
	return toFoodEntity(&updated), nil
}

// RemoveComment loads the listing, removes the first comment whose id matches,
// and persists the shortened array. ErrNotFound covers both a missing listing
// and a missing comment id.
func (r *FoodMongoRepository) RemoveComment(ctx context.Context, foodID, commentID string) (*entity.Food, error) {
	objID, err := primitive.ObjectIDFromHex(foodID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc foodDocument
	err = r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get food for comment removal: %w", err)
	}

	idx := -1
	for i, c := range doc.Comments {
		if c.ID.Hex() == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	doc.Comments = append(doc.Comments[:idx], doc.Comments[idx+1:]...)
	doc.UpdatedAt = time.Now()

	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"comments": doc.Comments, "updatedAt": doc.UpdatedAt}}

	var updated foodDocument
	err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, findOptions).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to remove comment in mongo: %w", err)
	}
	return toFoodEntity(&updated), nil
}
