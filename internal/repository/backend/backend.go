// Package backend builds the coffee repository selected by configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"coffeeapi/internal/config"
	"coffeeapi/internal/database"
	"coffeeapi/internal/database/migration"
	"coffeeapi/internal/repository"
	"coffeeapi/internal/repository/memory"
	"coffeeapi/internal/repository/objectstore"
	"coffeeapi/internal/repository/postgres"
	"coffeeapi/internal/repository/redis"
	"coffeeapi/internal/repository/sqlite"
	"coffeeapi/internal/storage"
)

const redisPingTimeout = 5 * time.Second

// CloseFunc releases whatever connections the backend holds.
type CloseFunc func() error

func noopClose() error { return nil }

// Open connects the backend named by cfg.Store.Backend, running schema
// migrations for the SQL dialects. The returned CloseFunc is never nil.
func Open(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (repository.CoffeeRepository, CloseFunc, error) {
	log = log.With(zap.String("backend", cfg.Store.Backend))

	switch cfg.Store.Backend {
	case config.BackendMemory:
		log.Info("store_opened")
		return memory.NewCoffeeMemory(), noopClose, nil

	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, noopClose, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, migration.Postgres, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, noopClose, err
		}
		log.Info("store_opened", zap.String("db_host", cfg.Database.Host))
		return postgres.NewCoffeePostgres(db), db.Close, nil

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, noopClose, fmt.Errorf("open sqlite: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, migration.SQLite, log, cfg.SQLite.Path); err != nil {
			_ = db.Close()
			return nil, noopClose, err
		}
		log.Info("store_opened", zap.String("path", cfg.SQLite.Path))
		return sqlite.NewCoffeeSQLite(db), db.Close, nil

	case config.BackendRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noopClose, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("store_opened", zap.String("addr", cfg.Redis.Addr))
		return redis.NewCoffeeRedis(rdb, cfg.Redis.KeyPrefix), rdb.Close, nil

	case config.BackendMinIO:
		store, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, noopClose, fmt.Errorf("init object storage: %w", err)
		}
		log.Info("store_opened", zap.String("bucket", cfg.MinIO.Bucket))
		return objectstore.NewCoffeeObjectStore(store), noopClose, nil

	default:
		return nil, noopClose, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
