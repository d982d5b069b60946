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

const userCollectionName = "users"

type UserMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(client *mongo.Client, dbName string) *UserMongoRepository {
	return &UserMongoRepository{db: client.Database(dbName)}
}

func (r *UserMongoRepository) collection() *mongo.Collection {
	return r.db.Collection(userCollectionName)
}

func (r *UserMongoRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc, err := toUserDocument(user)
	if err != nil {
		return "", err
	}

	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create user in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID for user")
	}
	return insertedID.Hex(), nil
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *UserMongoRepository) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"uid": uid})
}

func (r *UserMongoRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserMongoRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	err := r.collection().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

// GetByIDs resolves a batch of internal ids in one query, keyed by hex id.
// Missing ids are simply absent from the map.
func (r *UserMongoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return map[string]*entity.User{}, nil
	}

	cursor, err := r.collection().Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to list users by ids from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode user list from mongo: %w", err)
	}

	users := make(map[string]*entity.User, len(docs))
	for i := range docs {
		u := toUserEntity(&docs[i])
		users[u.ID] = u
	}
	return users, nil
}

func (r *UserMongoRepository) List(ctx context.Context) ([]*entity.User, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode user list from mongo: %w", err)
	}

	users := make([]*entity.User, len(docs))
	for i := range docs {
		users[i] = toUserEntity(&docs[i])
	}
	return users, nil
}

// UpsertByUID replaces the supplied profile fields for the user with the given
// external uid, creating the document if it does not exist yet.
func (r *UserMongoRepository) UpsertByUID(ctx context.Context, uid string, user *entity.User) (*entity.User, error) {
	now := time.Now()
	set := bson.M{
		"name":        user.Name,
		"email":       user.Email,
		"phoneNumber": user.PhoneNumber,
		"address": addressDocument{
			Street:   user.Address.Street,
			City:     user.Address.City,
			State:    user.Address.State,
			ZipCode:  user.Address.ZipCode,
			Location: toGeoPointDocument(user.Address.Location),
		},
		"role":         user.Role,
		"category":     user.Category,
		"profileImage": user.ProfileImage,
		"rating":       user.Rating,
		"updatedAt":    now,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"uid": uid, "createdAt": now},
	}

	findOptions := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc userDocument
	err := r.collection().FindOneAndUpdate(ctx, bson.M{"uid": uid}, update, findOptions).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user in mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

// Delete is a hard delete with no cascade to authored listings.
func (r *UserMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete user from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
