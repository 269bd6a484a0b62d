package database

import (
	"context"

	"growstat-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPgx opens the raw connection pool used by the pgx driver.
func ConnectPgx(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.PgxURL())
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
