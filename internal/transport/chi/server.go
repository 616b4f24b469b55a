// Package chi exposes the proximity search over HTTP.
package chi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/filter"
	"github.com/kailas-cloud/nearby/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Searcher runs a validated search.
type Searcher interface {
	Search(ctx context.Context, q *query.Query) (searchuc.Result, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the search API.
type Server struct {
	search        Searcher
	health        HealthChecker
	limits        query.Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, limits query.Limits, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		limits: limits,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusInternalServerError),
		sentinelHandler(context.Canceled, http.StatusServiceUnavailable),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search/guru", s.SearchGurus)
	r.Get("/search/gig", s.SearchGigs)
	r.Get("/search/all", s.SearchAll)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchGurus handles GET /search/guru.
func (s *Server) SearchGurus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	common, err := bindCommon(q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	gp, err := bindGuru(q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	f, err := filter.New(filter.Options{
		Category:      deref(common.Category),
		SkillKeywords: deref(gp.Skills),
		MinRating:     gp.MinRating,
		MaxHourlyRate: gp.MaxHourlyRate,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.runSearch(w, r, common.queryParams([]marker.Type{marker.Guru}, f), false)
}

// SearchGigs handles GET /search/gig.
func (s *Server) SearchGigs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	common, err := bindCommon(q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	gp, err := bindGig(q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	f, err := filter.New(filter.Options{
		Category:  deref(common.Category),
		Urgency:   deref(gp.Urgency),
		MaxBudget: gp.MaxBudget,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.runSearch(w, r, common.queryParams([]marker.Type{marker.Gig}, f), false)
}

// SearchAll handles GET /search/all. The response carries per-type stats.
func (s *Server) SearchAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	common, err := bindCommon(q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	types, err := bindTypes(q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	f, err := filter.New(filter.Options{Category: deref(common.Category)})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.runSearch(w, r, common.queryParams(types, f), true)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, p query.Params, withStats bool) {
	q, err := query.New(p, s.limits)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, searchResultToDTO(&q, res, withStats))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	healthy := report.Status == healthuc.Healthy
	httpStatus := http.StatusOK
	if !healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, Envelope{
		Success: healthy,
		Data: HealthResponse{
			Status:  string(report.Status),
			Checks:  checks,
			Version: report.Version,
		},
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// safeDomainMessage returns a client-safe message without exposing internals.
// Validation errors name the offending parameter.
func safeDomainMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		return domain.ErrSourceUnavailable.Error()
	case errors.Is(err, domain.ErrInvalidQuery):
		return domain.ErrInvalidQuery.Error()
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			if errors.Is(err, domain.ErrSourceUnavailable) {
				log.Error("search backend error", zap.Error(err))
			} else {
				log.Warn("domain error", zap.Error(err))
			}
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
