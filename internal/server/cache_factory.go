package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-shot-selection/internal/cache"
	"github.com/preston-bernstein/nba-shot-selection/internal/config"
)

const redisPingTimeout = 5 * time.Second

// BuildStore opens the configured cache backend. The returned close func
// releases backend connections and is never nil.
func BuildStore(cfg config.CacheConfig, logger *slog.Logger) (cache.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "fs", "":
		return cache.NewFSStore(cfg.Dir), noop, nil
	case "memory":
		return cache.NewMemoryStore(), noop, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis cache at %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisStore(client, ""), client.Close, nil
	default:
		if logger != nil {
			logger.Warn("unknown cache backend, falling back to fs", slog.String("backend", cfg.Backend))
		}
		return cache.NewFSStore(cfg.Dir), noop, nil
	}
}
