package usecase

import (
	"context"
	"time"
)

// Pinger is anything with a liveness check, such as a pgx pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	db    Pinger
	redis func(ctx context.Context) error
}

// NewHealthUsecase checks the database and, when redisCheck is set, Redis.
// Redis is optional, so its failure degrades but does not fail the check.
func NewHealthUsecase(db Pinger, redisCheck func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{db: db, redis: redisCheck}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok", "redis": "disabled"}
	healthy := true

	if u.db == nil || u.db.Ping(ctx) != nil {
		status["database"] = "unavailable"
		status["status"] = "unhealthy"
		healthy = false
	}

	if u.redis != nil {
		if err := u.redis(ctx); err != nil {
			status["redis"] = "unavailable"
			if healthy {
				status["status"] = "degraded"
			}
		} else {
			status["redis"] = "ok"
		}
	}
	return status, healthy
}
