package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReservationUseCase(rr *mockReservationRepo, fr *mockFoodRepo, ur *mockUserRepo) *ReservationUseCase {
	return NewReservationUseCase(rr, fr, ur, nil, nil, nil, zap.NewNop())
}

func validReservationInput() ReservationInput {
	return ReservationInput{
		FoodID:   "f1",
		UserID:   "u1",
		Location: "Market Square",
		DateTime: time.Now().Add(2 * time.Hour),
		Quantity: 2,
	}
}

func TestCreateReservationMissingFoodPersistsNothing(t *testing.T) {
	rr := new(mockReservationRepo)
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newReservationUseCase(rr, fr, ur)

	fr.On("GetByID", mock.Anything, "f1").Return(nil, repository.ErrNotFound)

	_, err := uc.CreateReservation(context.Background(), validReservationInput())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "food or user")
	rr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservationMissingUserPersistsNothing(t *testing.T) {
	rr := new(mockReservationRepo)
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newReservationUseCase(rr, fr, ur)

	fr.On("GetByID", mock.Anything, "f1").Return(&entity.Food{ID: "f1", UserID: "owner"}, nil)
	ur.On("GetByID", mock.Anything, "u1").Return(nil, repository.ErrNotFound)

	_, err := uc.CreateReservation(context.Background(), validReservationInput())
	require.ErrorIs(t, err, ErrNotFound)
	rr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservationValidation(t *testing.T) {
	rr := new(mockReservationRepo)
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newReservationUseCase(rr, fr, ur)

	input := validReservationInput()
	input.Quantity = 0
	_, err := uc.CreateReservation(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidation)

	input = validReservationInput()
	input.Status = "Pending"
	_, err = uc.CreateReservation(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidation)

	fr.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateReservationPopulatesReferences(t *testing.T) {
	rr := new(mockReservationRepo)
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newReservationUseCase(rr, fr, ur)

	food := &entity.Food{ID: "f1", UserID: "owner", Title: "Bread"}
	user := &entity.User{ID: "u1", Name: "Dana"}
	fr.On("GetByID", mock.Anything, "f1").Return(food, nil)
	ur.On("GetByID", mock.Anything, "u1").Return(user, nil)
	rr.On("Create", mock.Anything, mock.Anything).Return("r1", nil)

	reservation, err := uc.CreateReservation(context.Background(), validReservationInput())
	require.NoError(t, err)
	assert.Equal(t, "r1", reservation.ID)
	assert.Equal(t, food, reservation.Food)
	assert.Equal(t, user, reservation.User)
}

func TestUpdateReservationRevalidatesReferences(t *testing.T) {
	rr := new(mockReservationRepo)
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newReservationUseCase(rr, fr, ur)

	fr.On("GetByID", mock.Anything, "f1").Return(nil, repository.ErrNotFound)

	_, err := uc.UpdateReservation(context.Background(), "r1", validReservationInput())
	require.ErrorIs(t, err, ErrNotFound)
	rr.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateReservationAllowsAnyValidStatus(t *testing.T) {
	rr := new(mockReservationRepo)
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newReservationUseCase(rr, fr, ur)

	fr.On("GetByID", mock.Anything, "f1").Return(&entity.Food{ID: "f1"}, nil)
	ur.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1"}, nil)

	// Cancelled back to Reserved is accepted; statuses are an enum, not a
	// state machine.
	input := validReservationInput()
	input.Status = entity.StatusReserved
	rr.On("Update", mock.Anything, mock.MatchedBy(func(r *entity.Reservation) bool {
		return r.ID == "r1" && r.Status == entity.StatusReserved
	})).Return(&entity.Reservation{ID: "r1", Status: entity.StatusReserved}, nil)

	updated, err := uc.UpdateReservation(context.Background(), "r1", input)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReserved, updated.Status)
}

func TestDeleteReservationNotFound(t *testing.T) {
	rr := new(mockReservationRepo)
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newReservationUseCase(rr, fr, ur)

	rr.On("Delete", mock.Anything, "ghost").Return(repository.ErrNotFound)

	err := uc.DeleteReservation(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
