package kvstore

import (
	"context"
	"fmt"

	"github.com/klokku/freelancer/internal/config"
	"github.com/klokku/freelancer/internal/database"
	log "github.com/sirupsen/logrus"
)

// Store maps slot names to opaque serialized values. Writes to the same slot
// from different processes are last-write-wins.
type Store interface {
	// Get returns the slot value and whether the slot exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	// Clear removes every slot owned by the store.
	Clear(ctx context.Context) error
	Close() error
}

// Open creates the store selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg config.Application) (Store, error) {
	switch cfg.Storage.Driver {
	case config.MemoryStorage:
		log.Warn("Using in-memory storage, data will be lost on exit")
		return NewMemory(), nil
	case config.SQLiteStorage, "":
		db, err := database.OpenSQLite(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return NewSQLite(db), nil
	case config.PostgresStorage:
		if err := database.MigratePostgres(cfg.Database); err != nil {
			return nil, err
		}
		pool, err := database.OpenPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewPostgres(pool), nil
	case config.RedisStorage:
		return OpenRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
