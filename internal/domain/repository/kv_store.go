package repository

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by repositories when a key does not exist.
var ErrNotFound = errors.New("not found")

// KVStore is a flat string-keyed store of JSON documents. Keys are grouped
// into namespaces by prefix (e.g. "problem:", "user:").
//
// Implementations must be safe for concurrent single-key reads and writes.
// No multi-key atomicity is expected.
type KVStore interface {
	// Get returns the stored document and whether the key exists.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	// Set stores value under key, replacing any previous document.
	Set(ctx context.Context, key string, value json.RawMessage) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// ScanPrefix returns every document whose key starts with prefix.
	ScanPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error)
}
