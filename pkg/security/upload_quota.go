package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go-movie-community-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// KEYS[1] = quota key
// ARGV[1] = limit, ARGV[2] = window seconds, ARGV[3] = now (unix millis), ARGV[4] = member
// Returns 1 if allowed, 0 if over quota
const uploadQuotaScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window * 1000)

if redis.call('ZCARD', key) >= limit then
    return 0
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('EXPIRE', key, window)
return 1
`

// UploadQuota caps poster uploads per user over a sliding window.
type UploadQuota struct {
	limit  int
	window time.Duration
}

// NewUploadQuota returns nil when limit is not positive, meaning no quota.
func NewUploadQuota(limit int, window time.Duration) *UploadQuota {
	if limit <= 0 {
		return nil
	}
	if window < time.Second {
		window = 24 * time.Hour
	}
	return &UploadQuota{limit: limit, window: window}
}

// Allow records one upload for userID. Without Redis it allows everything;
// the write rate limit still applies. retryAfter is in seconds.
func (q *UploadQuota) Allow(ctx context.Context, userID string) (allowed bool, retryAfter int, err error) {
	if q == nil {
		return true, 0, nil
	}
	client := redis.Client()
	if client == nil {
		return true, 0, nil
	}
	return q.allow(ctx, client, userID, time.Now())
}

func (q *UploadQuota) allow(ctx context.Context, client *goredis.Client, userID string, now time.Time) (bool, int, error) {
	key := "quota:poster:user:" + userID
	millis := now.UnixMilli()
	member := strconv.FormatInt(now.UnixNano(), 36)

	result, err := client.Eval(ctx, uploadQuotaScript, []string{key},
		q.limit, int(q.window.Seconds()), millis, member).Result()
	if err != nil {
		return false, 0, fmt.Errorf("upload quota check failed: %w", err)
	}
	ok, isInt := result.(int64)
	if !isInt {
		return false, 0, fmt.Errorf("unexpected result type from upload quota script")
	}
	if ok == 1 {
		return true, 0, nil
	}
	return false, int(q.window.Seconds()), nil
}
