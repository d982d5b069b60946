package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
)

// ErrNotFound is returned when a referenced document (or an embedded comment)
// does not exist. Adapters translate driver-level misses into this error.
var ErrNotFound = errors.New("entity not found")

// FoodUpdate carries the fields a listing update may replace. Nil fields are
// left untouched; UpdatedAt is always refreshed by the repository.
type FoodUpdate struct {
	Title         *string
	Description   *string
	Quantity      *string
	Category      *string
	Location      *entity.GeoPoint
	ImageURL      *string
	IsUrgent      *bool
	DietryRestric *string
	Price         *string
	Unit          *string
	ExpiresAt     *time.Time
}

type FoodRepository interface {
	Create(ctx context.Context, food *entity.Food) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Food, error)
	List(ctx context.Context) ([]*entity.Food, error)
	ListExpiringAfter(ctx context.Context, t time.Time) ([]*entity.Food, error)
	Update(ctx context.Context, id string, upd FoodUpdate) (*entity.Food, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, foodID string, comment entity.Comment) (*entity.Food, error)
	RemoveComment(ctx context.Context, foodID, commentID string) (*entity.Food, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (string, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUID(ctx context.Context, uid string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpsertByUID(ctx context.Context, uid string, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *entity.Reservation) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	List(ctx context.Context) ([]*entity.Reservation, error)
	Update(ctx context.Context, r *entity.Reservation) (*entity.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type UserStatsRepository interface {
	Create(ctx context.Context, s *entity.UserStats) (string, error)
	GetByID(ctx context.Context, id string) (*entity.UserStats, error)
	List(ctx context.Context) ([]*entity.UserStats, error)
	Update(ctx context.Context, id string, totalDonations, totalClaims int, badges []entity.Badge) (*entity.UserStats, error)
	Delete(ctx context.Context, id string) error
}
