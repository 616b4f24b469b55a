package nearby

import (
	"context"

	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "error"
	Checks map[string]string // component → "ok"/"error"
}

// Health reports store connectivity. Clients built only from custom
// sources have nothing to check and always report "ok".
func (c *Client) Health(ctx context.Context) HealthStatus {
	if c.healthSvc == nil {
		return HealthStatus{Status: string(healthuc.Healthy), Checks: map[string]string{}}
	}
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
