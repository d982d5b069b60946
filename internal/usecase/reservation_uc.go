package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Priiiyaa/Gratify/internal/adapter/email"
	natsAdapter "github.com/Priiiyaa/Gratify/internal/adapter/nats"
	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"go.uber.org/zap"
)

type ReservationUseCase struct {
	reservationRepo repository.ReservationRepository
	foodRepo        repository.FoodRepository
	userRepo        repository.UserRepository
	publisher       EventPublisher
	mailer          email.EmailSender
	metrics         *metrics.MetricsManager
	logger          *zap.Logger
}

func NewReservationUseCase(
	rr repository.ReservationRepository,
	fr repository.FoodRepository,
	ur repository.UserRepository,
	pub EventPublisher,
	mailer email.EmailSender,
	mm *metrics.MetricsManager,
	log *zap.Logger,
) *ReservationUseCase {
	return &ReservationUseCase{
		reservationRepo: rr,
		foodRepo:        fr,
		userRepo:        ur,
		publisher:       pub,
		mailer:          mailer,
		metrics:         mm,
		logger:          log,
	}
}

type ReservationInput struct {
	FoodID   string
	UserID   string
	Location string
	DateTime time.Time
	Quantity int
	Status   entity.ReservationStatus
}

// validateReferences re-checks that both the listing and the user exist. This
// runs on every create and update; a missing reference is NotFound, not a
// partial success.
func (uc *ReservationUseCase) validateReferences(ctx context.Context, foodID, userID string) (*entity.Food, *entity.User, error) {
	food, err := uc.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: food or user", ErrNotFound)
		}
		return nil, nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: food or user", ErrNotFound)
		}
		return nil, nil, err
	}
	return food, user, nil
}

func (uc *ReservationUseCase) CreateReservation(ctx context.Context, input ReservationInput) (*entity.Reservation, error) {
	if input.Location == "" || input.DateTime.IsZero() || input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: location, dateTime and a positive quantity are required", ErrValidation)
	}
	if input.Status != "" && !entity.ValidReservationStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrValidation, input.Status)
	}

	food, user, err := uc.validateReferences(ctx, input.FoodID, input.UserID)
	if err != nil {
		return nil, err
	}

	reservation := &entity.Reservation{
		FoodID:   input.FoodID,
		UserID:   input.UserID,
		Location: input.Location,
		DateTime: input.DateTime,
		Quantity: input.Quantity,
		Status:   input.Status,
	}
	createdID, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("Failed to create reservation in repository", zap.Error(err))
		return nil, fmt.Errorf("ReservationUseCase.CreateReservation: %w", err)
	}
	reservation.ID = createdID
	reservation.Food = food
	reservation.User = user

	if uc.metrics != nil {
		uc.metrics.ReservationsCreatedTotal.Inc()
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, natsAdapter.SubjectReservationCreated, reservation); err != nil {
			uc.logger.Warn("Failed to publish reservation event", zap.Error(err))
		}
	}
	uc.notifyOwner(ctx, food, user, reservation)

	return reservation, nil
}

func (uc *ReservationUseCase) GetReservation(ctx context.Context, id string) (*entity.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("ReservationUseCase.GetReservation: %w", err)
	}
	uc.populate(ctx, []*entity.Reservation{reservation})
	return reservation, nil
}

func (uc *ReservationUseCase) ListReservations(ctx context.Context) ([]*entity.Reservation, error) {
	reservations, err := uc.reservationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReservationUseCase.ListReservations: %w", err)
	}
	uc.populate(ctx, reservations)
	return reservations, nil
}

// UpdateReservation accepts any status in the enum after any other; there is
// deliberately no transition state machine.
func (uc *ReservationUseCase) UpdateReservation(ctx context.Context, id string, input ReservationInput) (*entity.Reservation, error) {
	if input.Status != "" && !entity.ValidReservationStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrValidation, input.Status)
	}

	food, user, err := uc.validateReferences(ctx, input.FoodID, input.UserID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.reservationRepo.Update(ctx, &entity.Reservation{
		ID:       id,
		FoodID:   input.FoodID,
		UserID:   input.UserID,
		Location: input.Location,
		DateTime: input.DateTime,
		Quantity: input.Quantity,
		Status:   input.Status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("ReservationUseCase.UpdateReservation: %w", err)
	}
	updated.Food = food
	updated.User = user
	return updated, nil
}

func (uc *ReservationUseCase) DeleteReservation(ctx context.Context, id string) error {
	if err := uc.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: reservation %s", ErrNotFound, id)
		}
		return fmt.Errorf("ReservationUseCase.DeleteReservation: %w", err)
	}
	return nil
}

// notifyOwner emails the listing owner about a new claim when SMTP is
// configured. Best-effort only.
func (uc *ReservationUseCase) notifyOwner(ctx context.Context, food *entity.Food, claimant *entity.User, r *entity.Reservation) {
	if uc.mailer == nil {
		return
	}
	owner, err := uc.userRepo.GetByID(ctx, food.UserID)
	if err != nil || owner.Email == "" {
		return
	}

	subject := fmt.Sprintf("Your listing %q has a new reservation", food.Title)
	body := fmt.Sprintf("%s reserved %d %s of %q for %s at %s.",
		claimant.Name, r.Quantity, food.Unit, food.Title,
		r.DateTime.Format(time.RFC1123), r.Location)
	if err := uc.mailer.Send(ctx, []string{owner.Email}, subject, "", body); err != nil {
		uc.logger.Warn("Failed to send reservation notification",
			zap.String("reservation_id", r.ID), zap.Error(err))
	}
}

func (uc *ReservationUseCase) populate(ctx context.Context, reservations []*entity.Reservation) {
	for _, r := range reservations {
		if food, err := uc.foodRepo.GetByID(ctx, r.FoodID); err == nil {
			r.Food = food
		}
		if user, err := uc.userRepo.GetByID(ctx, r.UserID); err == nil {
			r.User = user
		}
	}
}
