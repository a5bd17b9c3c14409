package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"identity-service/internal/config"
	"identity-service/internal/db"
	"identity-service/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

// Close releases both infrastructure clients; each is closed even if
// the other fails.
func (i *Infra) Close() error {
	return errors.Join(i.Redis.Close(), i.DB.Close())
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunBootstrapMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	slog.Info("database ready")

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	slog.Info("redis ready")

	return &Infra{
		DB:    &db.DB{DB: sqlDB},
		Redis: redisClient,
	}, nil
}
