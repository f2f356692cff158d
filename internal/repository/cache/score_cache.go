package cache

import (
	"context"
	"time"

	"go-movie-community-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type scoreEntry struct {
	Score      int   `json:"s"`
	ComputedAt int64 `json:"t"`
}

type scoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreCache stores compatibility scores in Redis. A nil client yields a
// cache that never hits and drops writes.
func NewScoreCache(client *redis.Client, ttl time.Duration) domain.ScoreCache {
	return &scoreCache{client: client, ttl: ttl}
}

func (c *scoreCache) GetMany(ctx context.Context, keys []string) (map[string]int, error) {
	out := make(map[string]int, len(keys))
	if c.client == nil || len(keys) == 0 {
		return out, nil
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return out, err
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		if score, ok := decodeScore(raw); ok {
			out[keys[i]] = score
		}
	}
	return out, nil
}

func (c *scoreCache) SetMany(ctx context.Context, scores map[string]int) error {
	if c.client == nil || len(scores) == 0 {
		return nil
	}

	now := time.Now().Unix()
	pipe := c.client.Pipeline()
	for key, score := range scores {
		payload, err := json.Marshal(scoreEntry{Score: score, ComputedAt: now})
		if err != nil {
			return err
		}
		pipe.Set(ctx, key, payload, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func decodeScore(raw string) (int, bool) {
	var e scoreEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return 0, false
	}
	if e.Score < 0 || e.Score > 100 {
		return 0, false
	}
	return e.Score, true
}
