package helpers

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisGetRaw returns the stored bytes for key; ok is false when the key
// does not exist.
func RedisGetRaw(ctx context.Context, rdb *redis.Client, key string) (b []byte, ok bool, err error) {
	b, err = rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// RedisSetRaw stores value under key without expiry.
func RedisSetRaw(ctx context.Context, rdb *redis.Client, key string, value []byte) error {
	return rdb.Set(ctx, key, value, 0).Err()
}

func RedisDel(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

// RedisScanKeys walks the keyspace with SCAN and returns every key that
// starts with prefix. Glob metacharacters in prefix are matched literally.
func RedisScanKeys(ctx context.Context, rdb *redis.Client, prefix string, batch int64) ([]string, error) {
	if batch <= 0 {
		batch = 100
	}
	var keys []string
	iter := rdb.Scan(ctx, 0, escapeGlob(prefix)+"*", batch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// RedisMGetRaw fetches keys in batches of at most batch keys. The result
// follows the order of keys; keys that vanished in between are skipped.
func RedisMGetRaw(ctx context.Context, rdb *redis.Client, keys []string, batch int) ([][]byte, error) {
	if batch <= 0 {
		batch = 200
	}
	out := make([][]byte, 0, len(keys))
	for start := 0; start < len(keys); start += batch {
		end := min(start+batch, len(keys))
		vals, err := rdb.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			if s, ok := v.(string); ok {
				out = append(out, []byte(s))
			}
		}
	}
	return out, nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globEscaper.Replace(s) }
