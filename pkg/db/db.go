package db

import (
	"context"
	"database/sql"
	"time"

	_ "justfood/internal/db/migrations"
	"justfood/pkg/config"
	"justfood/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func Connect(ctx context.Context, cfg *config.DatabaseConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connCtx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("", "db_connected", "Connected to PostgreSQL database")
	return pool, nil
}

// Migrate runs the registered goose migrations. It opens its own short-lived
// database/sql connection because goose does not speak pgx native.
func Migrate(cfg *config.DatabaseConfig, log *logger.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := goose.Up(sqlDB, "./internal/db/migrations"); err != nil {
		return err
	}

	log.Info("", "migrations_applied", "Database schema is up to date")
	return nil
}
