package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"go.uber.org/zap"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserUseCase(ur repository.UserRepository, log *zap.Logger) *UserUseCase {
	return &UserUseCase{userRepo: ur, logger: log}
}

type UserProfileInput struct {
	Name         string
	Email        string
	PhoneNumber  string
	Address      entity.Address
	Role         string
	Category     string
	ProfileImage string
	Rating       string
}

// CreateOrGetUser implements the upsert-on-login contract: a repeat login with
// the same external uid returns the existing record (created=false) instead of
// erroring. Client logic depends on this, so it is preserved as-is.
func (uc *UserUseCase) CreateOrGetUser(ctx context.Context, uid string, input UserProfileInput) (*entity.User, bool, error) {
	if uid == "" {
		return nil, false, fmt.Errorf("%w: uid is required", ErrValidation)
	}
	if input.Name == "" || input.Email == "" {
		return nil, false, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	existing, err := uc.userRepo.GetByUID(ctx, uid)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("UserUseCase.CreateOrGetUser: %w", err)
	}

	user := &entity.User{
		UID:          uid,
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		Role:         input.Role,
		Category:     input.Category,
		ProfileImage: input.ProfileImage,
		Rating:       input.Rating,
	}
	createdID, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		uc.logger.Error("Failed to create user in repository", zap.String("uid", uid), zap.Error(err))
		return nil, false, fmt.Errorf("UserUseCase.CreateOrGetUser: %w", err)
	}
	user.ID = createdID
	return user, true, nil
}

// UpsertProfile replaces the supplied profile fields, creating the record if
// the uid has never been seen (original PUT behavior).
func (uc *UserUseCase) UpsertProfile(ctx context.Context, uid string, input UserProfileInput) (*entity.User, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrValidation)
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		Role:         input.Role,
		Category:     input.Category,
		ProfileImage: input.ProfileImage,
		Rating:       input.Rating,
	}
	updated, err := uc.userRepo.UpsertByUID(ctx, uid, user)
	if err != nil {
		uc.logger.Error("Failed to upsert user profile", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("UserUseCase.UpsertProfile: %w", err)
	}
	return updated, nil
}

func (uc *UserUseCase) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return nil, fmt.Errorf("UserUseCase.GetByUID: %w", err)
	}
	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase.ListUsers: %w", err)
	}
	return users, nil
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return fmt.Errorf("UserUseCase.DeleteUser: %w", err)
	}
	return nil
}

// LoginByEmail backs the legacy POST /api/login path: an identity lookup by
// email returning the external uid.
func (uc *UserUseCase) LoginByEmail(ctx context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with email %s", ErrNotFound, email)
		}
		return nil, fmt.Errorf("UserUseCase.LoginByEmail: %w", err)
	}
	return user, nil
}
