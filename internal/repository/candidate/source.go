// Package candidate reads entity records from the key-value store for
// proximity search.
package candidate

import (
	"context"
	"fmt"
	"slices"

	"github.com/kailas-cloud/nearby/internal/domain/entity"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/usecase/search"
)

// DefaultBatchSize is the number of keys fetched per pipelined round-trip.
const DefaultBatchSize = 500

// store is the consumer interface for candidate reads (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
}

var _ search.CandidateSource = (*Source)(nil)

// Source implements search.CandidateSource for one entity type.
// The store has no spatial index, so every record of the type is returned.
type Source struct {
	store     store
	keys      Keyspace
	typ       marker.Type
	batchSize int
}

// NewSource creates a candidate source for t.
func NewSource(s store, keys Keyspace, t marker.Type) *Source {
	return &Source{store: s, keys: keys, typ: t, batchSize: DefaultBatchSize}
}

// WithBatchSize overrides the GET pipeline size.
func (s *Source) WithBatchSize(n int) *Source {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// Type returns the entity type served by this source.
func (s *Source) Type() marker.Type { return s.typ }

// FetchAll returns every stored record of the source's type, ordered by key.
// Keys that disappear between SCAN and GET are skipped.
func (s *Source) FetchAll(ctx context.Context, _ search.FetchHints) ([]entity.Raw, error) {
	keys, err := s.store.Scan(ctx, s.keys.Pattern(s.typ))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.typ, err)
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	out := make([]entity.Raw, 0, len(keys))
	for batch := range slices.Chunk(keys, s.batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs, err := s.store.GetMulti(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("get %s batch: %w", s.typ, err)
		}
		for i, doc := range docs {
			if doc == nil {
				continue
			}
			out = append(out, entity.NewRaw(s.typ, s.keys.ID(s.typ, batch[i]), doc))
		}
	}
	return out, nil
}
