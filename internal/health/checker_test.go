package health_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/contact-manager/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type checkerWithGauge struct {
	*health.Checker
	reg *prometheus.Registry
}

func newTestChecker(deps ...health.Dependency) checkerWithGauge {
	reg := prometheus.NewRegistry()
	return checkerWithGauge{health.NewChecker(slog.Default(), reg, deps...), reg}
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c := newTestChecker(health.Dependency{Name: "postgres", Pinger: &mockPinger{err: errors.New("db down")}})

	result := c.Liveness(context.Background())
	if !result.Up() {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
}

func TestReadiness_StorageUp(t *testing.T) {
	c := newTestChecker(health.Dependency{Name: "postgres", Pinger: &mockPinger{}})

	result := c.Readiness(context.Background())
	if !result.Up() {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	pg, ok := result.Checks["postgres"]
	if !ok {
		t.Fatal("missing postgres check")
	}
	if pg.Status != "up" {
		t.Fatalf("expected postgres up, got %s", pg.Status)
	}

	if got := gaugeValue(t, c, "postgres"); got != 1 {
		t.Fatalf("expected gauge 1, got %f", got)
	}
}

func TestReadiness_StorageDown(t *testing.T) {
	c := newTestChecker(health.Dependency{Name: "postgres", Pinger: &mockPinger{err: errors.New("connection refused")}})

	result := c.Readiness(context.Background())
	if result.Up() {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	pg := result.Checks["postgres"]
	if pg.Status != "down" {
		t.Fatalf("expected postgres down, got %s", pg.Status)
	}
	if pg.Error == "" {
		t.Fatal("expected error message")
	}

	if got := gaugeValue(t, c, "postgres"); got != 0 {
		t.Fatalf("expected gauge 0, got %f", got)
	}
}

func TestReadiness_OneDownFailsOverall(t *testing.T) {
	c := newTestChecker(
		health.Dependency{Name: "memory", Pinger: &mockPinger{}},
		health.Dependency{Name: "postgres", Pinger: &mockPinger{err: errors.New("timeout")}},
	)

	result := c.Readiness(context.Background())
	if result.Up() {
		t.Fatal("expected overall status down")
	}
	if result.Checks["memory"].Status != "up" {
		t.Fatalf("memory check = %s, want up", result.Checks["memory"].Status)
	}
}

func gaugeValue(t *testing.T, c checkerWithGauge, dep string) float64 {
	t.Helper()
	mfs, err := c.reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "contacts_health_check_up" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == dep {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("contacts_health_check_up{dependency=%q} not found", dep)
	return 0
}

func TestCollectorCount(t *testing.T) {
	c := newTestChecker(health.Dependency{Name: "memory", Pinger: &mockPinger{}})
	c.Readiness(context.Background())

	if n, err := testutil.GatherAndCount(c.reg, "contacts_health_check_up"); err != nil || n != 1 {
		t.Fatalf("series = %d, err = %v; want 1 series", n, err)
	}
}
