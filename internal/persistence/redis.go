package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/config"
)

const redisProbeTimeout = 3 * time.Second

// Redis holds the client backing the view-state store.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the client and probes the server once. An unreachable
// server is logged, not fatal; go-redis reconnects on demand and readiness
// reports the outage.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisProbeTimeout,
	})

	r := &Redis{Client: client}
	probeCtx, cancel := context.WithTimeout(ctx, redisProbeTimeout)
	defer cancel()
	if err := r.Ping(probeCtx); err != nil {
		logger.Warn("redis unreachable; view state will fail until it recovers", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return r
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
