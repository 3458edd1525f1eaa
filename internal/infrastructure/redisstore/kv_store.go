package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/civic-reports/internal/domain/repository"
	"github.com/oksasatya/civic-reports/pkg/helpers"
)

// mgetBatch bounds how many keys go into a single MGET round trip.
const mgetBatch = 200

// KVStore stores each document as a JSON string value, one Redis key per
// document. Keys never expire.
type KVStore struct {
	rdb *redis.Client
}

func NewKVStore(rdb *redis.Client) *KVStore {
	return &KVStore{rdb: rdb}
}

func (s *KVStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	b, ok, err := helpers.RedisGetRaw(ctx, s.rdb, key)
	if err != nil || !ok {
		return nil, false, err
	}
	return json.RawMessage(b), true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return errors.New("redisstore: value is not valid JSON")
	}
	return helpers.RedisSetRaw(ctx, s.rdb, key, value)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return helpers.RedisDel(ctx, s.rdb, key)
}

// ScanPrefix returns documents ordered by key. Keys removed between SCAN and
// MGET are skipped.
func (s *KVStore) ScanPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	keys, err := helpers.RedisScanKeys(ctx, s.rdb, prefix, 100)
	if err != nil {
		return nil, err
	}
	// SCAN may return a key more than once
	sort.Strings(keys)
	keys = dedupSorted(keys)

	vals, err := helpers.RedisMGetRaw(ctx, s.rdb, keys, mgetBatch)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out, nil
}

func dedupSorted(keys []string) []string {
	if len(keys) < 2 {
		return keys
	}
	out := keys[:1]
	for _, k := range keys[1:] {
		if k != out[len(out)-1] {
			out = append(out, k)
		}
	}
	return out
}

var _ repository.KVStore = (*KVStore)(nil)
