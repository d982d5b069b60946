package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"github.com/Priiiyaa/Gratify/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFoodUseCase(fr *mockFoodRepo, ur *mockUserRepo, pub *mockPublisher) *FoodUseCase {
	var p EventPublisher
	if pub != nil {
		p = pub
	}
	return NewFoodUseCase(fr, ur, nil, p, nil, zap.NewNop())
}

func TestCreateFoodValidation(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newFoodUseCase(fr, ur, nil)

	cases := []struct {
		name  string
		input CreateFoodInput
	}{
		{"missing user", CreateFoodInput{Title: "Apples", ExpiresAt: time.Now().Add(time.Hour)}},
		{"missing title", CreateFoodInput{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}},
		{"missing expiry", CreateFoodInput{UserID: "u1", Title: "Apples"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateFood(context.Background(), tc.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	fr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFoodDefaultsCommentsAndPublishes(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	pub := new(mockPublisher)
	uc := newFoodUseCase(fr, ur, pub)

	fr.On("Create", mock.Anything, mock.MatchedBy(func(f *entity.Food) bool {
		return f.Comments != nil && len(f.Comments) == 0
	})).Return("food-1", nil)
	pub.On("Publish", mock.Anything, "gratify.food.created", mock.Anything).Return(nil)

	food, err := uc.CreateFood(context.Background(), CreateFoodInput{
		UserID:    "u1",
		Title:     "Surplus bread",
		Price:     "0",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "food-1", food.ID)
	fr.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestGetFoodNotFound(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newFoodUseCase(fr, ur, nil)

	fr.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := uc.GetFood(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFoodsPopulatesOwners(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newFoodUseCase(fr, ur, nil)

	owner := &entity.User{ID: "u1", Name: "Dana"}
	fr.On("List", mock.Anything).Return([]*entity.Food{
		{ID: "f1", UserID: "u1", Title: "Apples"},
		{ID: "f2", UserID: "u2", Title: "Bread"},
	}, nil)
	ur.On("GetByIDs", mock.Anything, []string{"u1", "u2"}).
		Return(map[string]*entity.User{"u1": owner}, nil)

	foods, err := uc.ListFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, owner, foods[0].Owner)
	assert.Nil(t, foods[1].Owner) // unresolved owner degrades to nil, not an error
}

func TestListFoodsExpiringAfterEmptyIsNotFound(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newFoodUseCase(fr, ur, nil)

	now := time.Now()
	fr.On("ListExpiringAfter", mock.Anything, now).Return(nil, repository.ErrNotFound)

	_, err := uc.ListFoodsExpiringAfter(context.Background(), now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRankedFoodsExcludesExpired(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newFoodUseCase(fr, ur, nil)

	fr.On("List", mock.Anything).Return([]*entity.Food{
		{ID: "fresh", UserID: "u1", Title: "Fresh", ExpiresAt: time.Now().Add(time.Hour)},
		{ID: "stale", UserID: "u1", Title: "Stale", ExpiresAt: time.Now().Add(-time.Hour)},
	}, nil)
	ur.On("GetByIDs", mock.Anything, mock.Anything).Return(map[string]*entity.User{}, nil)

	items, err := uc.RankedFoods(context.Background(), nil, ranking.Params{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].Food.ID)
}

func TestAddCommentValidation(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newFoodUseCase(fr, ur, nil)

	_, err := uc.AddComment(context.Background(), "f1", "", "nice")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.AddComment(context.Background(), "f1", "u1", "")
	assert.ErrorIs(t, err, ErrValidation)

	fr.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveCommentMissingIsNotFound(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	uc := newFoodUseCase(fr, ur, nil)

	fr.On("RemoveComment", mock.Anything, "f1", "ghost").Return(nil, repository.ErrNotFound)

	_, err := uc.RemoveComment(context.Background(), "f1", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFoodPublishesEvent(t *testing.T) {
	fr := new(mockFoodRepo)
	ur := new(mockUserRepo)
	pub := new(mockPublisher)
	uc := newFoodUseCase(fr, ur, pub)

	fr.On("Delete", mock.Anything, "f1").Return(nil)
	pub.On("Publish", mock.Anything, "gratify.food.deleted", mock.Anything).Return(nil)

	require.NoError(t, uc.DeleteFood(context.Background(), "f1"))
	pub.AssertExpectations(t)
}
