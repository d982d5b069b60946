package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	redisCache "github.com/Priiiyaa/Gratify/internal/adapter/cache/redis"
	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"go.uber.org/zap"
)

// LeaderboardCache is the seam for the Redis adapter.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]redisCache.LeaderboardEntry, error)
	Set(ctx context.Context, entries []redisCache.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type UserStatsUseCase struct {
	statsRepo repository.UserStatsRepository
	userRepo  repository.UserRepository
	cache     LeaderboardCache
	logger    *zap.Logger
}

func NewUserStatsUseCase(
	sr repository.UserStatsRepository,
	ur repository.UserRepository,
	cache LeaderboardCache,
	log *zap.Logger,
) *UserStatsUseCase {
	return &UserStatsUseCase{
		statsRepo: sr,
		userRepo:  ur,
		cache:     cache,
		logger:    log,
	}
}

// CreateUserStats requires the referenced user to exist at creation time;
// stats are never created implicitly alongside a user.
func (uc *UserStatsUseCase) CreateUserStats(ctx context.Context, userID string, totalDonations, totalClaims int, badges []entity.Badge) (*entity.UserStats, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("UserStatsUseCase.CreateUserStats: %w", err)
	}

	stats := &entity.UserStats{
		UserID:         userID,
		TotalDonations: totalDonations,
		TotalClaims:    totalClaims,
		Badges:         badges,
	}
	createdID, err := uc.statsRepo.Create(ctx, stats)
	if err != nil {
		uc.logger.Error("Failed to create user stats in repository", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("UserStatsUseCase.CreateUserStats: %w", err)
	}
	stats.ID = createdID
	stats.User = user

	uc.invalidateLeaderboard(ctx)
	return stats, nil
}

func (uc *UserStatsUseCase) GetUserStats(ctx context.Context, id string) (*entity.UserStats, error) {
	stats, err := uc.statsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user stats %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("UserStatsUseCase.GetUserStats: %w", err)
	}
	uc.populate(ctx, []*entity.UserStats{stats})
	return stats, nil
}

func (uc *UserStatsUseCase) ListUserStats(ctx context.Context) ([]*entity.UserStats, error) {
	stats, err := uc.statsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserStatsUseCase.ListUserStats: %w", err)
	}
	uc.populate(ctx, stats)
	return stats, nil
}

func (uc *UserStatsUseCase) UpdateUserStats(ctx context.Context, id string, totalDonations, totalClaims int, badges []entity.Badge) (*entity.UserStats, error) {
	updated, err := uc.statsRepo.Update(ctx, id, totalDonations, totalClaims, badges)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user stats %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("UserStatsUseCase.UpdateUserStats: %w", err)
	}
	uc.populate(ctx, []*entity.UserStats{updated})

	uc.invalidateLeaderboard(ctx)
	return updated, nil
}

func (uc *UserStatsUseCase) DeleteUserStats(ctx context.Context, id string) error {
	if err := uc.statsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user stats %s", ErrNotFound, id)
		}
		return fmt.Errorf("UserStatsUseCase.DeleteUserStats: %w", err)
	}
	uc.invalidateLeaderboard(ctx)
	return nil
}

// Leaderboard returns all users with stats ordered by contribution points,
// read through the cache. Ties break by name so the order is deterministic.
func (uc *UserStatsUseCase) Leaderboard(ctx context.Context) ([]redisCache.LeaderboardEntry, error) {
	if uc.cache != nil {
		entries, err := uc.cache.Get(ctx)
		if err == nil {
			return entries, nil
		}
		if !errors.Is(err, redisCache.ErrNotFound) {
			uc.logger.Warn("Failed to read leaderboard from cache", zap.Error(err))
		}
	}

	stats, err := uc.ListUserStats(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]redisCache.LeaderboardEntry, 0, len(stats))
	for _, s := range stats {
		entry := redisCache.LeaderboardEntry{
			UserID: s.UserID,
			Points: s.Points(),
		}
		if s.User != nil {
			entry.Name = s.User.Name
			entry.ProfileImage = s.User.ProfileImage
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, entries); err != nil {
			uc.logger.Warn("Failed to cache leaderboard", zap.Error(err))
		}
	}
	return entries, nil
}

func (uc *UserStatsUseCase) invalidateLeaderboard(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
	}
}

func (uc *UserStatsUseCase) populate(ctx context.Context, stats []*entity.UserStats) {
	if len(stats) == 0 {
		return
	}
	ids := make([]string, 0, len(stats))
	for _, s := range stats {
		ids = append(ids, s.UserID)
	}
	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("Failed to resolve stats users", zap.Error(err))
		return
	}
	for _, s := range stats {
		s.User = users[s.UserID]
	}
}
