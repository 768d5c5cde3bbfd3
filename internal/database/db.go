package database

import (
	"context"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open builds the pool and verifies connectivity before the server starts
// taking traffic.
func Open(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
