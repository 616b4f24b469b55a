package candidate

import (
	"context"
	"path"
	"sync"

	"github.com/kailas-cloud/nearby/internal/db"
)

// mockStore is an in-memory KV store for tests. Scan matches with path.Match,
// which shares the glob syntax used in SCAN patterns.
type mockStore struct {
	mu   sync.Mutex
	data map[string][]byte

	scanFn     func(ctx context.Context, pattern string) ([]string, error)
	getMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	getCalls   int
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) put(key, doc string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = []byte(doc)
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *mockStore) SetMulti(_ context.Context, items []db.KVItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.data[it.Key] = it.Value
	}
	return nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) (int64, error) {
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
