package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/internal/domain/repository"
	"github.com/oksasatya/civic-reports/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/civic-reports/internal/infrastructure/postgres"
	"github.com/oksasatya/civic-reports/internal/infrastructure/redisstore"
)

// NewKVStore picks the store implementation named by backend. The caller owns
// the connections it passes in.
func NewKVStore(backend string, rdb *redis.Client, db *sql.DB) (repository.KVStore, error) {
	switch backend {
	case config.BackendRedis:
		if rdb == nil {
			return nil, errors.New("redis backend selected but no redis client configured")
		}
		return redisstore.NewKVStore(rdb), nil
	case config.BackendPostgres:
		if db == nil {
			return nil, errors.New("postgres backend selected but no database configured")
		}
		return pginfra.NewKVStore(db), nil
	case config.BackendMemory:
		return memory.NewKVStore(), nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}
