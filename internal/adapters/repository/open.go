package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/config"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

// Backend is an opened KVStore together with its health check and cleanup.
type Backend struct {
	Name  string
	Store domain.KVStore
	Ping  func(ctx context.Context) error
	Close func() error
}

// Open builds the store selected by cfg.Storage.Backend. rdb may be nil when
// redis is not configured or unreachable; the redis backend then fails and
// the read-through cache is skipped.
func Open(ctx context.Context, cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var b *Backend
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		b = &Backend{
			Name:  config.BackendMemory,
			Store: NewInMemoryStore(),
			Ping:  func(context.Context) error { return nil },
			Close: func() error { return nil },
		}

	case config.BackendSQLite:
		store, err := OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		b = &Backend{Name: config.BackendSQLite, Store: store, Ping: store.Ping, Close: store.Close}

	case config.BackendPostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("repository: connect postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		store := NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		b = &Backend{Name: config.BackendPostgres, Store: store, Ping: store.Ping, Close: db.Close}

	case config.BackendRedis:
		if rdb == nil {
			return nil, errors.New("repository: redis backend selected but redis is unavailable")
		}
		store := NewRedisStore(rdb, "food_diary:")
		b = &Backend{Name: config.BackendRedis, Store: store, Ping: store.Ping, Close: func() error { return nil }}

	default:
		return nil, fmt.Errorf("repository: unknown backend %q", cfg.Storage.Backend)
	}

	cacheable := b.Name == config.BackendSQLite || b.Name == config.BackendPostgres
	if cfg.Storage.CacheEnabled && cacheable {
		if rdb == nil {
			logger.Warn("cache enabled but redis is unavailable, continuing without cache")
		} else {
			b.Store = NewCachedStore(b.Store, rdb, cfg.Storage.CacheTTL, logger)
			b.Name += "+redis-cache"
		}
	}

	logger.Info("storage ready", zap.String("backend", b.Name))
	return b, nil
}
