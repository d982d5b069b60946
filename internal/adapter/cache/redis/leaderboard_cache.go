package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey = "leaderboard"
	leaderboardTTL = 1 * time.Minute
)

// ErrNotFound signals a cache miss.
var ErrNotFound = errors.New("cache: key not found")

// LeaderboardEntry is the cached, display-ready leaderboard row.
type LeaderboardEntry struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
	Points       int    `json:"points"`
}

// LeaderboardCache is a read-through cache in front of the user stats
// collection. Stats mutations invalidate it.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(addr, password string, db int) (*LeaderboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &LeaderboardCache{client: client}, nil
}

func (c *LeaderboardCache) Get(ctx context.Context) ([]LeaderboardEntry, error) {
	data, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardKey, data, leaderboardTTL).Err()
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardKey).Err()
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}
