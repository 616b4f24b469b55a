package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/page"
	"github.com/kailas-cloud/nearby/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
	"github.com/kailas-cloud/nearby/internal/metrics"
)

var errNoSource = errors.New("no candidate source configured")

// Result is one ranked page plus per-type match totals.
type Result struct {
	Page   page.Page[marker.Marker]
	Totals map[marker.Type]int
}

// Service runs proximity searches over per-type candidate sources.
type Service struct {
	sources      map[marker.Type]CandidateSource
	fetchTimeout time.Duration
}

// New creates a search service. Types without a source fail at search time.
func New(sources map[marker.Type]CandidateSource) *Service {
	return &Service{sources: sources}
}

// WithFetchTimeout bounds the fetch phase of every search. Zero disables it.
func (s *Service) WithFetchTimeout(d time.Duration) *Service {
	s.fetchTimeout = d
	return s
}

// Search fetches candidates for each requested type concurrently, filters,
// merges, ranks and paginates them. A failed fetch cancels the others and
// fails the whole search; partial results are never returned.
func (s *Service) Search(ctx context.Context, q *query.Query) (res Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveSearch(q.Scope(), start, err) }()

	log := logpkg.FromContext(ctx)
	box := geo.NewBox(q.Center(), q.RadiusMiles())
	hints := FetchHints{Center: q.Center(), RadiusMiles: q.RadiusMiles(), Box: box}
	types := q.Types()

	srcs := make([]CandidateSource, len(types))
	for i, t := range types {
		src, ok := s.sources[t]
		if !ok || src == nil {
			return Result{}, &domain.SourceError{EntityType: string(t), Err: errNoSource}
		}
		srcs[i] = src
	}

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	perType := make([][]marker.Marker, len(types))
	g, gctx := errgroup.WithContext(fetchCtx)
	for i, t := range types {
		src := srcs[i]
		g.Go(func() error {
			fetchStart := time.Now()
			raws, ferr := src.FetchAll(gctx, hints)
			metrics.ObserveFetch(string(t), fetchStart, ferr)
			if ferr != nil {
				return &domain.SourceError{EntityType: string(t), Err: ferr}
			}

			markers, stats := filterCandidates(t, raws, q, box)
			metrics.AddCandidates(string(t),
				stats.NoLocation, stats.OutsideBox, stats.OutsideRadius, stats.Filtered, stats.Matched)
			if stats.NoLocation > 0 {
				log.Debug("skipped candidates without usable location",
					zap.String("entity_type", string(t)),
					zap.Int("count", stats.NoLocation),
				)
			}
			log.Debug("candidate scan",
				zap.String("entity_type", string(t)),
				zap.Int("scanned", stats.Scanned),
				zap.Int("matched", stats.Matched),
				zap.Duration("fetch", time.Since(fetchStart)),
			)

			perType[i] = markers
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("search cancelled: %w", ctxErr)
		}
		return Result{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, fmt.Errorf("search cancelled: %w", ctxErr)
	}

	totals := make(map[marker.Type]int, len(types))
	for i, t := range types {
		totals[t] = len(perType[i])
	}

	ranked := merge(perType, q.Includes(marker.Gig))
	return Result{
		Page:   page.Paginate(ranked, q.Page(), q.PageSize()),
		Totals: totals,
	}, nil
}
