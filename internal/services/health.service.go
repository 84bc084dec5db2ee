package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"github.com/nimasrn/branch-backoffice/pkg/redis"
)

type HealthService struct {
	db    *pg.DB
	redis redis.RedisAdapter
}

func NewHealthService(db *pg.DB, redis redis.RedisAdapter) *HealthService {
	return &HealthService{db: db, redis: redis}
}

// Get pings both backing stores.
func (s *HealthService) Get(ctx context.Context) error {
	sqlDB, err := s.db.Read(ctx).DB()
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := s.redis.Client().Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}
