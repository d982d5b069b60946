package mongo

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const testDBName = "test_gratify_db"

var (
	testClient          *mongodrv.Client
	testFoodRepo        *FoodMongoRepository
	testUserRepo        *UserMongoRepository
	testReservationRepo *ReservationMongoRepository
	testStatsRepo       *UserStatsMongoRepository
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "5.0",
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=root",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	uri := fmt.Sprintf("mongodb://root:password@%s/%s?authSource=admin", resource.GetHostPort("27017/tcp"), testDBName)

	if err := pool.Retry(func() error {
		var errRetry error
		testClient, errRetry = mongodrv.Connect(context.Background(), options.Client().ApplyURI(uri))
		if errRetry != nil {
			return errRetry
		}
		return testClient.Ping(context.Background(), nil)
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}

	testFoodRepo = NewFoodMongoRepository(testClient, testDBName)
	testUserRepo = NewUserMongoRepository(testClient, testDBName)
	testReservationRepo = NewReservationMongoRepository(testClient, testDBName)
	testStatsRepo = NewUserStatsMongoRepository(testClient, testDBName)

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Fatalf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func clearCollections(t *testing.T) {
	t.Helper()
	for _, name := range []string{"foods", "users", "reservations", "userstats"} {
		_, err := testClient.Database(testDBName).Collection(name).DeleteMany(context.Background(), bson.M{})
		require.NoError(t, err)
	}
}

func seedFood(t *testing.T, title string, expiresAt time.Time) *entity.Food {
	t.Helper()
	food := &entity.Food{
		UserID:    seedUser(t, title+"-owner").ID,
		Title:     title,
		Price:     "0",
		ExpiresAt: expiresAt,
		Comments:  []entity.Comment{},
	}
	id, err := testFoodRepo.Create(context.Background(), food)
	require.NoError(t, err)
	food.ID = id
	return food
}

func seedUser(t *testing.T, name string) *entity.User {
	t.Helper()
	user := &entity.User{
		UID:   "uid-" + name,
		Name:  name,
		Email: name + "@example.com",
	}
	id, err := testUserRepo.Create(context.Background(), user)
	require.NoError(t, err)
	user.ID = id
	return user
}

func TestFoodRepoCreateAndGet(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	created := seedFood(t, "Surplus apples", time.Now().Add(24*time.Hour))

	fetched, err := testFoodRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Surplus apples", fetched.Title)
	assert.Equal(t, "0", fetched.Price)
	assert.NotNil(t, fetched.Comments)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestFoodRepoGetMissing(t *testing.T) {
	clearCollections(t)

	_, err := testFoodRepo.GetByID(context.Background(), "64a000000000000000000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFoodRepoPartialUpdate(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	created := seedFood(t, "Bread", time.Now().Add(24*time.Hour))

	newTitle := "Day-old bread"
	urgent := true
	updated, err := testFoodRepo.Update(ctx, created.ID, repository.FoodUpdate{
		Title:    &newTitle,
		IsUrgent: &urgent,
	})
	require.NoError(t, err)
	assert.Equal(t, "Day-old bread", updated.Title)
	assert.True(t, updated.IsUrgent)
	assert.Equal(t, "0", updated.Price) // untouched fields survive
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestFoodRepoComments(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	food := seedFood(t, "Soup", time.Now().Add(24*time.Hour))
	commenter := seedUser(t, "commenter")

	withFirst, err := testFoodRepo.AddComment(ctx, food.ID, entity.Comment{
		UserID: commenter.ID, Text: "Still available?", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, withFirst.Comments, 1)

	withSecond, err := testFoodRepo.AddComment(ctx, food.ID, entity.Comment{
		UserID: commenter.ID, Text: "I can pick up tonight", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, withSecond.Comments, 2)

	// remove the first, the second stays in place
	afterRemove, err := testFoodRepo.RemoveComment(ctx, food.ID, withSecond.Comments[0].ID)
	require.NoError(t, err)
	require.Len(t, afterRemove.Comments, 1)
	assert.Equal(t, "I can pick up tonight", afterRemove.Comments[0].Text)

	// removing an unknown comment id changes nothing
	_, err = testFoodRepo.RemoveComment(ctx, food.ID, withSecond.Comments[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	unchanged, err := testFoodRepo.GetByID(ctx, food.ID)
	require.NoError(t, err)
	assert.Len(t, unchanged.Comments, 1)
}

func TestFoodRepoListExpiringAfter(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	seedFood(t, "Expired", time.Now().Add(-time.Hour))
	seedFood(t, "Fresh", time.Now().Add(48*time.Hour))

	foods, err := testFoodRepo.ListExpiringAfter(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Fresh", foods[0].Title)
}

func TestFoodRepoListExpiringAfterEmptyIsNotFound(t *testing.T) {
	clearCollections(t)

	seedFood(t, "Expired", time.Now().Add(-time.Hour))

	_, err := testFoodRepo.ListExpiringAfter(context.Background(), time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepoGetByUIDAndEmail(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	created := seedUser(t, "dana")

	byUID, err := testUserRepo.GetByUID(ctx, created.UID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUID.ID)

	byEmail, err := testUserRepo.GetByEmail(ctx, "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = testUserRepo.GetByUID(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepoUpsertByUID(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	// first upsert creates
	first, err := testUserRepo.UpsertByUID(ctx, "uid-upsert", &entity.User{
		Name:  "First Name",
		Email: "upsert@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-upsert", first.UID)

	// second upsert replaces the profile but keeps the document
	second, err := testUserRepo.UpsertByUID(ctx, "uid-upsert", &entity.User{
		Name:  "Second Name",
		Email: "upsert@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Second Name", second.Name)
}

func TestUserRepoGetByIDsBatch(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	a := seedUser(t, "alpha")
	b := seedUser(t, "beta")

	users, err := testUserRepo.GetByIDs(ctx, []string{a.ID, b.ID, "64a000000000000000000000"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alpha", users[a.ID].Name)
	assert.Equal(t, "beta", users[b.ID].Name)
}

func TestReservationRepoLifecycle(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	food := seedFood(t, "Rice", time.Now().Add(24*time.Hour))
	user := seedUser(t, "claimer")

	reservation := &entity.Reservation{
		FoodID:   food.ID,
		UserID:   user.ID,
		Location: "Market Square",
		DateTime: time.Now().Add(2 * time.Hour).Truncate(time.Millisecond),
		Quantity: 2,
	}
	id, err := testReservationRepo.Create(ctx, reservation)
	require.NoError(t, err)

	fetched, err := testReservationRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReserved, fetched.Status) // default applied on create
	assert.Equal(t, 2, fetched.Quantity)

	fetched.Status = entity.StatusCompleted
	updated, err := testReservationRepo.Update(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, updated.Status)

	require.NoError(t, testReservationRepo.Delete(ctx, id))
	_, err = testReservationRepo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserStatsRepoLifecycle(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()

	user := seedUser(t, "donor")

	id, err := testStatsRepo.Create(ctx, &entity.UserStats{
		UserID:         user.ID,
		TotalDonations: 3,
		TotalClaims:    1,
	})
	require.NoError(t, err)

	fetched, err := testStatsRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.TotalDonations)
	assert.NotNil(t, fetched.Badges)

	updated, err := testStatsRepo.Update(ctx, id, 4, 2, []entity.Badge{{Title: "Top Donor"}})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.TotalDonations)
	require.Len(t, updated.Badges, 1)
	assert.Equal(t, "Top Donor", updated.Badges[0].Title)

	require.NoError(t, testStatsRepo.Delete(ctx, id))
	_, err = testStatsRepo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
