package nearby

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/nearby/internal/db"
	dbRedis "github.com/kailas-cloud/nearby/internal/db/redis"
	"github.com/kailas-cloud/nearby/internal/domain/entity"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/filter"
	"github.com/kailas-cloud/nearby/internal/domain/search/query"
	"github.com/kailas-cloud/nearby/internal/repository/candidate"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

type searchUseCase interface {
	Search(ctx context.Context, q *query.Query) (searchuc.Result, error)
}

type recordWriter interface {
	Put(ctx context.Context, t marker.Type, recs []candidate.Record) error
	Clear(ctx context.Context, t marker.Type) (int64, error)
}

// Client is the nearby SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	healthSvc healthUseCase
	writer    recordWriter
	limits    query.Limits
	obs       *observer
}

// New creates a Client. With WithValkey or WithRedis it connects to the
// store and waits for it using ctx; types not covered by WithSource are then
// read from the store. Without a store every searched type needs a source.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 && len(cfg.sources) == 0 {
		return nil, errors.New("nearby: no backend configured (use WithValkey, WithRedis or WithSource)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("nearby: database not ready: %w", err)
		}
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("nearby: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("nearby: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	keys := candidate.NewKeyspace(cfg.keyPrefix)

	sources := make(map[marker.Type]searchuc.CandidateSource, len(marker.AllTypes))
	for _, t := range marker.AllTypes {
		if src, ok := cfg.sources[EntityType(t)]; ok && src != nil {
			sources[t] = sourceAdapter{typ: t, inner: src}
			continue
		}
		if store != nil {
			s := candidate.NewSource(store, keys, t)
			if cfg.fetchBatchSize > 0 {
				s = s.WithBatchSize(cfg.fetchBatchSize)
			}
			sources[t] = s
		}
	}

	c := &Client{
		store:     store,
		searchSvc: searchuc.New(sources).WithFetchTimeout(cfg.fetchTimeout),
		limits:    limitsFrom(cfg),
		obs:       obs,
	}
	if store != nil {
		c.writer = candidate.NewWriter(store, keys)
		c.healthSvc = healthuc.New(store, "")
	}
	return c
}

func limitsFrom(cfg *clientConfig) query.Limits {
	l := query.DefaultLimits()
	if cfg.defaultRadiusMiles > 0 {
		l.DefaultRadiusMiles = cfg.defaultRadiusMiles
	}
	if cfg.defaultLimit > 0 {
		l.DefaultPageSize = cfg.defaultLimit
	}
	if cfg.maxLimit > 0 {
		l.MaxPageSize = cfg.maxLimit
	}
	return l
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.store == nil {
		return ErrNoStore
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a proximity search and returns one ranked page.
// Validation failures match ErrInvalidQuery; backend failures match
// ErrSourceUnavailable.
func (c *Client) Search(ctx context.Context, q Query) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "markers", len(res.Markers)) }()

	dq, err := c.buildQuery(q)
	if err != nil {
		return Result{}, err
	}
	out, err := c.searchSvc.Search(ctx, &dq)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}
	return toResult(out), nil
}

// Put stores documents of type t, replacing existing ones with the same id.
func (c *Client) Put(ctx context.Context, t EntityType, recs []Record) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("put", start, err, "records", len(recs)) }()

	if c.writer == nil {
		return ErrNoStore
	}
	mt, err := marker.ParseType(string(t))
	if err != nil {
		return err
	}
	out := make([]candidate.Record, len(recs))
	for i, r := range recs {
		out[i] = candidate.Record{ID: r.ID, Doc: r.Doc}
	}
	return c.writer.Put(ctx, mt, out)
}

// Clear removes every stored document of type t and returns how many were
// deleted.
func (c *Client) Clear(ctx context.Context, t EntityType) (n int64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("clear", start, err, "deleted", n) }()

	if c.writer == nil {
		return 0, ErrNoStore
	}
	mt, err := marker.ParseType(string(t))
	if err != nil {
		return 0, err
	}
	return c.writer.Clear(ctx, mt)
}

func (c *Client) buildQuery(q Query) (query.Query, error) {
	f, err := filter.New(filter.Options{
		Category:      q.Category,
		SkillKeywords: q.Skills,
		MinRating:     q.MinRating,
		MaxHourlyRate: q.MaxHourlyRate,
		MaxBudget:     q.MaxBudget,
		Urgency:       q.Urgency,
	})
	if err != nil {
		return query.Query{}, err
	}

	types := make([]marker.Type, 0, len(q.Types))
	for _, t := range q.Types {
		types = append(types, marker.Type(t))
	}
	if len(types) == 0 {
		types = marker.AllTypes
	}

	p := query.Params{
		Lat:    &q.Lat,
		Lng:    &q.Lng,
		Types:  types,
		Filter: f,
	}
	if q.RadiusMiles != 0 {
		p.RadiusMiles = &q.RadiusMiles
	}
	if q.Limit != 0 {
		p.PageSize = &q.Limit
	}
	if q.Page != 0 {
		p.Page = &q.Page
	}
	return query.New(p, c.limits)
}

// sourceAdapter exposes a public Source as an internal candidate source.
type sourceAdapter struct {
	typ   marker.Type
	inner Source
}

func (a sourceAdapter) FetchAll(ctx context.Context, hints searchuc.FetchHints) ([]entity.Raw, error) {
	recs, err := a.inner.FetchAll(ctx, Bounds{
		CenterLat:   hints.Center.Lat,
		CenterLng:   hints.Center.Lng,
		RadiusMiles: hints.RadiusMiles,
		MinLat:      hints.Box.MinLat,
		MaxLat:      hints.Box.MaxLat,
		MinLng:      hints.Box.MinLng,
		MaxLng:      hints.Box.MaxLng,
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.Raw, 0, len(recs))
	for _, r := range recs {
		key := r.Key
		if key == "" {
			key = r.ID
		}
		out = append(out, entity.NewRaw(a.typ, key, r.Doc))
	}
	return out, nil
}

func toResult(r searchuc.Result) Result {
	markers := make([]Marker, len(r.Page.Items))
	for i := range r.Page.Items {
		markers[i] = toMarker(&r.Page.Items[i])
	}
	return Result{
		Markers:    markers,
		Total:      r.Page.Total,
		Page:       r.Page.Page,
		Limit:      r.Page.PageSize,
		TotalPages: r.Page.TotalPages,
		TotalGurus: r.Totals[marker.Guru],
		TotalGigs:  r.Totals[marker.Gig],
	}
}

func toMarker(m *marker.Marker) Marker {
	return Marker{
		ID:            m.ID,
		Type:          EntityType(m.Type),
		Lat:           m.Position.Lat,
		Lng:           m.Position.Lng,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		ImageURL:      m.ImageURL,
		DistanceMiles: m.DistanceMiles,
		Href:          m.Href,
		Rating:        m.Rating,
		HourlyRate:    m.HourlyRate,
		Skills:        m.Skills,
		Urgency:       string(m.Urgency),
		Budget:        m.Budget,
		PostedAt:      m.PostedAt,
	}
}
