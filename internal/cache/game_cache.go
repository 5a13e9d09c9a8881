package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gamehub/internal/api/models"

	"github.com/redis/go-redis/v9"
)

// GameCache is a best-effort redis cache for game detail reads. A nil
// *GameCache is valid and disables caching, so callers never branch on
// whether redis is configured.
type GameCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameCache(redisAddr, password string, ttl time.Duration) (*GameCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &GameCache{client: rdb, ttl: ttl}, nil
}

func gameKey(gameID int64) string {
	return fmt.Sprintf("game:%d", gameID)
}

// Get returns the cached game row, or nil on miss or any redis error.
func (c *GameCache) Get(ctx context.Context, gameID int64) *models.GameRow {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := c.client.Get(ctx, gameKey(gameID)).Bytes()
	if err != nil {
		return nil
	}
	var row models.GameRow
	if err := json.Unmarshal(payload, &row); err != nil {
		return nil
	}
	return &row
}

func (c *GameCache) Set(ctx context.Context, row *models.GameRow) {
	if c == nil || c.client == nil || row == nil {
		return
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return
	}
	c.client.Set(ctx, gameKey(row.ID), payload, c.ttl)
}

// Invalidate drops a game's cached detail. Called after any mutation that
// can change what a detail read returns, rating recomputes included.
func (c *GameCache) Invalidate(ctx context.Context, gameID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, gameKey(gameID))
}

func (c *GameCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
