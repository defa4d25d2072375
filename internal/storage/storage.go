// Package storage provides the on-device key-value collaborator the cart
// persists through. Values are opaque strings; callers own the encoding.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/jask/gomarketplace/internal/config"
	"github.com/jask/gomarketplace/internal/database"
)

// ErrUnknownBackend is returned by Open for an unsupported storage.backend.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// KV is a string key-value store. Get reports found=false for a missing key
// without an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// HealthReporter is implemented by backends that can degrade, like Breaker.
type HealthReporter interface {
	Health() string
}

// Health returns what kv reports about its own health, or "" when it has
// nothing to report.
func Health(kv KV) string {
	if h, ok := kv.(HealthReporter); ok {
		return h.Health()
	}
	return ""
}

// Open builds the backend selected by cfg.Storage.Backend. The returned
// close func releases whatever the backend holds.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (KV, func() error, error) {
	if log == nil {
		log = slog.Default()
	}
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case "", "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		db, err := database.Open(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		if err := database.RunMigrations(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("storage opened", "backend", "sqlite", "path", cfg.Database.Path)
		return NewSQLite(db), db.Close, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		log.Info("storage opened", "backend", "redis", "addr", cfg.Redis.Addr)
		return NewBreaker(NewRedis(client, cfg.Redis.Prefix), "redis", log), client.Close, nil

	case "file":
		log.Info("storage opened", "backend", "file", "path", cfg.File.Path)
		return NewFile(cfg.File.Path), noop, nil

	case "memory":
		log.Warn("storage opened", "backend", "memory", "note", "cart will not survive restart")
		return NewMemory(), noop, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
}
