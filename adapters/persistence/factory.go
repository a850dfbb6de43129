package persistence

import (
	"context"
	"fmt"

	"github.com/khoahotran/scholar-folio/internal/application/service"
	"github.com/khoahotran/scholar-folio/internal/config"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

// OpenStore builds the backend named by cfg.Storage.Driver.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (service.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage; content is lost on exit")
		return NewMemoryKV(), nil
	case config.StorageDriverBadger, "":
		return NewBadgerKV(cfg.Storage.BadgerPath, log)
	case config.StorageDriverRedis:
		rdb, err := NewRedisClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return NewRedisKV(rdb), nil
	case config.StorageDriverPostgres:
		pool, err := NewPostgresPool(cfg, log)
		if err != nil {
			return nil, err
		}
		kv, err := NewPostgresKV(ctx, pool, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return kv, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
