package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	natsAdapter "github.com/Priiiyaa/Gratify/internal/adapter/nats"
	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"github.com/Priiiyaa/Gratify/internal/ranking"
	"go.uber.org/zap"
)

// EventPublisher is the seam for the NATS adapter; event failures are logged
// and swallowed, never failing the request.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ImageStorage is the seam for the S3 adapter.
type ImageStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

type FoodUseCase struct {
	foodRepo  repository.FoodRepository
	userRepo  repository.UserRepository
	storage   ImageStorage
	publisher EventPublisher
	metrics   *metrics.MetricsManager
	logger    *zap.Logger
}

func NewFoodUseCase(
	fr repository.FoodRepository,
	ur repository.UserRepository,
	storage ImageStorage,
	pub EventPublisher,
	mm *metrics.MetricsManager,
	log *zap.Logger,
) *FoodUseCase {
	return &FoodUseCase{
		foodRepo:  fr,
		userRepo:  ur,
		storage:   storage,
		publisher: pub,
		metrics:   mm,
		logger:    log,
	}
}

type CreateFoodInput struct {
	UserID        string
	Title         string
	Description   string
	Quantity      string
	Category      string
	Location      *entity.GeoPoint
	ImageURL      string
	IsUrgent      bool
	DietryRestric string
	Price         string
	Unit          string
	ExpiresAt     time.Time
	Comments      []entity.Comment
}

func (uc *FoodUseCase) CreateFood(ctx context.Context, input CreateFoodInput) (*entity.Food, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrValidation)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("%w: expiresAt is required", ErrValidation)
	}

	comments := input.Comments
	if comments == nil {
		comments = []entity.Comment{}
	}
	food := &entity.Food{
		UserID:        input.UserID,
		Title:         input.Title,
		Description:   input.Description,
		Quantity:      input.Quantity,
		Category:      input.Category,
		Location:      input.Location,
		ImageURL:      input.ImageURL,
		IsUrgent:      input.IsUrgent,
		DietryRestric: input.DietryRestric,
		Price:         input.Price,
		Unit:          input.Unit,
		ExpiresAt:     input.ExpiresAt,
		Comments:      comments,
	}

	createdID, err := uc.foodRepo.Create(ctx, food)
	if err != nil {
		uc.logger.Error("Failed to create food in repository", zap.Error(err), zap.String("user_id", input.UserID))
		return nil, fmt.Errorf("FoodUseCase.CreateFood: %w", err)
	}
	food.ID = createdID

	if uc.metrics != nil {
		uc.metrics.ListingsCreatedTotal.Inc()
	}
	uc.publish(ctx, natsAdapter.SubjectFoodCreated, food)

	return food, nil
}

func (uc *FoodUseCase) GetFood(ctx context.Context, id string) (*entity.Food, error) {
	food, err := uc.foodRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: food %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("FoodUseCase.GetFood: %w", err)
	}
	uc.populateOwners(ctx, []*entity.Food{food})
	return food, nil
}

func (uc *FoodUseCase) ListFoods(ctx context.Context) ([]*entity.Food, error) {
	foods, err := uc.foodRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("FoodUseCase.ListFoods: %w", err)
	}
	uc.populateOwners(ctx, foods)
	return foods, nil
}

// ListFoodsExpiringAfter keeps the original route contract: an empty result
// is a not-found condition, not an empty 200.
func (uc *FoodUseCase) ListFoodsExpiringAfter(ctx context.Context, t time.Time) ([]*entity.Food, error) {
	foods, err := uc.foodRepo.ListExpiringAfter(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no food items with expiry after %s", ErrNotFound, t.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("FoodUseCase.ListFoodsExpiringAfter: %w", err)
	}
	uc.populateOwners(ctx, foods)
	return foods, nil
}

// RankedFoods runs the browse pipeline server-side over all listings.
func (uc *FoodUseCase) RankedFoods(ctx context.Context, viewer *entity.GeoPoint, params ranking.Params) ([]ranking.Item, error) {
	foods, err := uc.foodRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("FoodUseCase.RankedFoods: %w", err)
	}
	uc.populateOwners(ctx, foods)

	flat := make([]entity.Food, len(foods))
	for i, f := range foods {
		flat[i] = *f
	}
	return ranking.Rank(flat, viewer, time.Now(), params), nil
}

func (uc *FoodUseCase) UpdateFood(ctx context.Context, id string, upd repository.FoodUpdate) (*entity.Food, error) {
	food, err := uc.foodRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: food %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("FoodUseCase.UpdateFood: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.ListingUpdatesTotal.Inc()
	}
	uc.publish(ctx, natsAdapter.SubjectFoodUpdated, food)

	return food, nil
}

func (uc *FoodUseCase) DeleteFood(ctx context.Context, id string) error {
	if err := uc.foodRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: food %s", ErrNotFound, id)
		}
		return fmt.Errorf("FoodUseCase.DeleteFood: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.ListingDeletesTotal.Inc()
	}
	uc.publish(ctx, natsAdapter.SubjectFoodDeleted, map[string]string{"id": id})

	return nil
}

func (uc *FoodUseCase) AddComment(ctx context.Context, foodID, userID, text string) (*entity.Food, error) {
	if userID == "" || text == "" {
		return nil, fmt.Errorf("%w: user and text are required", ErrValidation)
	}

	comment := entity.Comment{
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	food, err := uc.foodRepo.AddComment(ctx, foodID, comment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: food %s", ErrNotFound, foodID)
		}
		return nil, fmt.Errorf("FoodUseCase.AddComment: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.CommentsAddedTotal.Inc()
	}
	return food, nil
}

func (uc *FoodUseCase) RemoveComment(ctx context.Context, foodID, commentID string) (*entity.Food, error) {
	food, err := uc.foodRepo.RemoveComment(ctx, foodID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: food %s or comment %s", ErrNotFound, foodID, commentID)
		}
		return nil, fmt.Errorf("FoodUseCase.RemoveComment: %w", err)
	}
	return food, nil
}

// UploadPhoto stores the image and points the listing's imageURL at it.
func (uc *FoodUseCase) UploadPhoto(ctx context.Context, foodID, fileName string, data []byte) (string, error) {
	if uc.storage == nil {
		return "", fmt.Errorf("FoodUseCase.UploadPhoto: image storage is not configured")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrValidation)
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Failed to upload photo", zap.String("food_id", foodID), zap.Error(err))
		return "", fmt.Errorf("FoodUseCase.UploadPhoto: %w", err)
	}

	if _, err := uc.UpdateFood(ctx, foodID, repository.FoodUpdate{ImageURL: &url}); err != nil {
		return "", err
	}
	return url, nil
}

func (uc *FoodUseCase) publish(ctx context.Context, subject string, data interface{}) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// populateOwners resolves the owning-user reference on each food in one batch
// query. Resolution failures leave Owner nil rather than failing the read.
func (uc *FoodUseCase) populateOwners(ctx context.Context, foods []*entity.Food) {
	if len(foods) == 0 {
		return
	}
	ids := make([]string, 0, len(foods))
	seen := make(map[string]bool, len(foods))
	for _, f := range foods {
		if !seen[f.UserID] {
			seen[f.UserID] = true
			ids = append(ids, f.UserID)
		}
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("Failed to resolve food owners", zap.Error(err))
		return
	}
	for _, f := range foods {
		f.Owner = users[f.UserID]
	}
}
