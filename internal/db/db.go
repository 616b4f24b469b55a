package db

import (
	"context"
	"time"
)

// Store is the storage facade used by the service.
// Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVItem is a single key+value pair for pipelined SET.
type KVItem struct {
	Key   string
	Value []byte
}

// KVReader reads raw documents.
type KVReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMulti returns one entry per key, in order. Missing keys yield nil.
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	// Scan returns every key matching the glob pattern.
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVWriter writes and removes raw documents.
type KVWriter interface {
	Set(ctx context.Context, key string, value []byte) error
	SetMulti(ctx context.Context, items []KVItem) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

// KVStore combines reads and writes.
type KVStore interface {
	KVReader
	KVWriter
}
