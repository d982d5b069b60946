package usecase

import (
	"context"
	"time"

	redisCache "github.com/Priiiyaa/Gratify/internal/adapter/cache/redis"
	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"github.com/stretchr/testify/mock"
)

type mockFoodRepo struct {
	mock.Mock
}

func (m *mockFoodRepo) Create(ctx context.Context, food *entity.Food) (string, error) {
	args := m.Called(ctx, food)
	return args.String(0), args.Error(1)
}

func (m *mockFoodRepo) GetByID(ctx context.Context, id string) (*entity.Food, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*entity.Food); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodRepo) List(ctx context.Context) ([]*entity.Food, error) {
	args := m.Called(ctx)
	if foods, ok := args.Get(0).([]*entity.Food); ok {
		return foods, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodRepo) ListExpiringAfter(ctx context.Context, t time.Time) ([]*entity.Food, error) {
	args := m.Called(ctx, t)
	if foods, ok := args.Get(0).([]*entity.Food); ok {
		return foods, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodRepo) Update(ctx context.Context, id string, upd repository.FoodUpdate) (*entity.Food, error) {
	args := m.Called(ctx, id, upd)
	if f, ok := args.Get(0).(*entity.Food); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockFoodRepo) AddComment(ctx context.Context, foodID string, comment entity.Comment) (*entity.Food, error) {
	args := m.Called(ctx, foodID, comment)
	if f, ok := args.Get(0).(*entity.Food); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodRepo) RemoveComment(ctx context.Context, foodID, commentID string) (*entity.Food, error) {
	args := m.Called(ctx, foodID, commentID)
	if f, ok := args.Get(0).(*entity.Food); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	args := m.Called(ctx, uid)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	args := m.Called(ctx, ids)
	if users, ok := args.Get(0).(map[string]*entity.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpsertByUID(ctx context.Context, uid string, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, uid, user)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, r *entity.Reservation) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*entity.Reservation); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) List(ctx context.Context) ([]*entity.Reservation, error) {
	args := m.Called(ctx)
	if rs, ok := args.Get(0).([]*entity.Reservation); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) Update(ctx context.Context, r *entity.Reservation) (*entity.Reservation, error) {
	args := m.Called(ctx, r)
	if res, ok := args.Get(0).(*entity.Reservation); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) Create(ctx context.Context, s *entity.UserStats) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *mockStatsRepo) GetByID(ctx context.Context, id string) (*entity.UserStats, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*entity.UserStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) List(ctx context.Context) ([]*entity.UserStats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).([]*entity.UserStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) Update(ctx context.Context, id string, totalDonations, totalClaims int, badges []entity.Badge) (*entity.UserStats, error) {
	args := m.Called(ctx, id, totalDonations, totalClaims, badges)
	if s, ok := args.Get(0).(*entity.UserStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type mockLeaderboardCache struct {
	mock.Mock
}

func (m *mockLeaderboardCache) Get(ctx context.Context) ([]redisCache.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]redisCache.LeaderboardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeaderboardCache) Set(ctx context.Context, entries []redisCache.LeaderboardEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *mockLeaderboardCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
