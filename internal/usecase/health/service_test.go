package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockDBPinger struct {
	err      error
	deadline bool
}

func (m *mockDBPinger) Ping(ctx context.Context) error {
	_, m.deadline = ctx.Deadline()
	return m.err
}

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockDBPinger{}, "v1.0.0")
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %q", r.Version)
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, "dev")
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
}

func TestCheck_PingHasDeadline(t *testing.T) {
	p := &mockDBPinger{}
	svc := New(p, "dev")
	svc.pingTimeout = 50 * time.Millisecond

	svc.Check(context.Background())
	if !p.deadline {
		t.Error("expected ping context to carry a deadline")
	}
}
