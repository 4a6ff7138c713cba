package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fan-pulse/config"
)

// Init creates the pgx connection pool from config and verifies connectivity.
func Init(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, int(cfg.ConnectTimeout.Seconds()),
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to create connection pool", "error", err)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("failed to ping database", "error", err)

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to database", "host", cfg.Host, "db", cfg.DBName)

	return pool, nil
}
