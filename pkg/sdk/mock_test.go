package nearby

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/kailas-cloud/nearby/internal/db"
)

// memStore is an in-memory db.Store. Scan matches with path.Match, which
// shares the glob syntax of SCAN patterns.
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	pingErr error
	closed  bool
}

var _ db.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *memStore) WaitForReady(context.Context, time.Duration) error { return m.pingErr }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) GetMulti(_ context.Context, keys []string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) SetMulti(ctx context.Context, items []db.KVItem) error {
	for _, it := range items {
		_ = m.Set(ctx, it.Key, it.Value)
	}
	return nil
}

func (m *memStore) Del(_ context.Context, keys ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

// staticSource serves fixed records and remembers the last bounds.
type staticSource struct {
	mu     sync.Mutex
	recs   []Record
	err    error
	bounds Bounds
	calls  int
}

func (s *staticSource) FetchAll(_ context.Context, b Bounds) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.bounds = b
	if s.err != nil {
		return nil, s.err
	}
	return s.recs, nil
}

func rec(id, doc string) Record {
	return Record{ID: id, Doc: []byte(doc)}
}

// testClient wires a client over the given store (may be nil) and options.
func testClient(store db.Store, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	return wireClient(store, cfg, nil)
}
