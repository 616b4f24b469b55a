package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/nearby/internal/domain/entity"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/filter"
	"github.com/kailas-cloud/nearby/internal/domain/search/query"
)

// mockSource implements CandidateSource for tests.
type mockSource struct {
	raws    []entity.Raw
	err     error
	fetchFn func(ctx context.Context, hints FetchHints) ([]entity.Raw, error)
	calls   atomic.Int32
}

func (m *mockSource) FetchAll(ctx context.Context, hints FetchHints) ([]entity.Raw, error) {
	m.calls.Add(1)
	if m.fetchFn != nil {
		return m.fetchFn(ctx, hints)
	}
	return m.raws, m.err
}

func guruDoc(id string, lat, lng float64, extra string) entity.Raw {
	doc := fmt.Sprintf(`{"id":%q,"name":"guru %s","location":{"lat":%v,"lng":%v}%s}`, id, id, lat, lng, extra)
	return entity.NewRaw(marker.Guru, id, []byte(doc))
}

func gigDoc(id string, lat, lng float64, urgency string) entity.Raw {
	doc := fmt.Sprintf(`{"id":%q,"title":"gig %s","urgency":%q,"location":{"lat":%v,"lng":%v}}`,
		id, id, urgency, lat, lng)
	return entity.NewRaw(marker.Gig, id, []byte(doc))
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

type queryOpt func(*query.Params)

func withTypes(ts ...marker.Type) queryOpt { return func(p *query.Params) { p.Types = ts } }
func withRadius(r float64) queryOpt        { return func(p *query.Params) { p.RadiusMiles = &r } }
func withPage(pg, size int) queryOpt {
	return func(p *query.Params) { p.Page = intp(pg); p.PageSize = intp(size) }
}
func withFilter(t *testing.T, o filter.Options) queryOpt {
	t.Helper()
	f, err := filter.New(o)
	require.NoError(t, err)
	return func(p *query.Params) { p.Filter = f }
}

func makeQuery(t *testing.T, lat, lng float64, opts ...queryOpt) *query.Query {
	t.Helper()
	p := query.Params{Lat: f64(lat), Lng: f64(lng), Types: []marker.Type{marker.Guru}}
	for _, o := range opts {
		o(&p)
	}
	q, err := query.New(p, query.DefaultLimits())
	require.NoError(t, err)
	return &q
}

func ids(ms []marker.Marker) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}
