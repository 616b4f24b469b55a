package candidate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
)

// ErrEmptyID is returned when a record has no identifier.
var ErrEmptyID = errors.New("record id is empty")

// writeStore is the consumer interface for seeding (ISP).
type writeStore interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	SetMulti(ctx context.Context, items []db.KVItem) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

// Record is one raw JSON document to store under ID.
type Record struct {
	ID  string
	Doc []byte
}

// Writer loads and clears entity records for the seeding tool and the SDK.
type Writer struct {
	store     writeStore
	keys      Keyspace
	batchSize int
}

// NewWriter creates a writer.
func NewWriter(s writeStore, keys Keyspace) *Writer {
	return &Writer{store: s, keys: keys, batchSize: DefaultBatchSize}
}

// Put stores records of type t, overwriting existing ids.
func (w *Writer) Put(ctx context.Context, t marker.Type, recs []Record) error {
	if !t.IsValid() {
		return fmt.Errorf("put: unknown entity type %q", t)
	}
	items := make([]db.KVItem, 0, len(recs))
	for i, r := range recs {
		if r.ID == "" {
			return fmt.Errorf("record %d: %w", i, ErrEmptyID)
		}
		items = append(items, db.KVItem{Key: w.keys.Key(t, r.ID), Value: r.Doc})
	}

	for batch := range slices.Chunk(items, w.batchSize) {
		if err := w.store.SetMulti(ctx, batch); err != nil {
			return fmt.Errorf("put %s: %w", t, err)
		}
	}
	return nil
}

// Clear deletes every record of type t and returns how many were removed.
func (w *Writer) Clear(ctx context.Context, t marker.Type) (int64, error) {
	keys, err := w.store.Scan(ctx, w.keys.Pattern(t))
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", t, err)
	}

	var total int64
	for batch := range slices.Chunk(keys, w.batchSize) {
		n, err := w.store.Del(ctx, batch...)
		if err != nil {
			return total, fmt.Errorf("clear %s: %w", t, err)
		}
		total += n
	}
	return total, nil
}
