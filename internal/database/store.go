package database

import (
	"context"
	"fmt"

	"growstat-backend/config"
	"growstat-backend/internal/store"
	"growstat-backend/pkg/logger"

	"go.uber.org/zap"
)

// OpenStore builds the record store selected by cfg.StoreDriver, runs its
// migrations and, when redis is configured for a non-redis driver, wraps it
// in the write-through cache.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	base, err := openBaseStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.StoreDriver == config.DriverRedis || !cfg.CacheEnabled || !cfg.RedisConfigured() {
		return base, nil
	}

	rdb, err := ConnectRedis(ctx, cfg)
	if err != nil {
		// The cache is optional; run without it.
		logger.Log.Warn("redis cache unavailable, continuing without it", zap.Error(err))
		return base, nil
	}
	logger.Log.Info("redis cache enabled", zap.Duration("ttl", cfg.CacheTTL))
	return store.NewCachedStore(base, rdb, cfg.CacheTTL), nil
}

func openBaseStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		s := store.NewGormStore(db)
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return s, nil

	case config.DriverPgx:
		pool, err := ConnectPgx(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres pool: %w", err)
		}
		s := store.NewPgxStore(pool)
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return s, nil

	case config.DriverRedis:
		rdb, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return store.NewRedisStore(rdb), nil

	case config.DriverFile:
		s, err := store.OpenFileStore(cfg.DataFile)
		if err != nil {
			return nil, fmt.Errorf("open data file: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
