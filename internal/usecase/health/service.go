package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the store is unreachable and searches will fail.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// DefaultPingTimeout bounds a single store ping.
const DefaultPingTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Version string
}

// Service coordinates health checks.
type Service struct {
	db          DBPinger
	version     string
	pingTimeout time.Duration
}

// New creates a Service.
func New(db DBPinger, version string) *Service {
	return &Service{db: db, version: version, pingTimeout: DefaultPingTimeout}
}

// Check pings the store. Search cannot work without it, so a failed ping
// makes the service unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()

	checks := map[string]CheckResult{"database": CheckOK}
	status := Healthy
	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks, Version: s.version}
}
