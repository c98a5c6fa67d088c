package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReport_AllHealthy(t *testing.T) {
	m := NewMonitor()
	m.RegisterComponent("redis", CheckerFunc(func(ctx context.Context) error { return nil }), true)
	m.RegisterComponent("postgres", CheckerFunc(func(ctx context.Context) error { return nil }), true)

	report := m.Report(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("overall status = %s, want healthy", report.Status)
	}
	if len(report.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(report.Components))
	}
	for name, ch := range report.Components {
		if ch.Status != StatusHealthy {
			t.Errorf("%s status = %s, want healthy", name, ch.Status)
		}
	}
}

func TestReport_RequiredFailureIsCritical(t *testing.T) {
	m := NewMonitor()
	m.RegisterComponent("redis", CheckerFunc(func(ctx context.Context) error {
		return errors.New("connection refused")
	}), true)
	m.RegisterComponent("postgres", CheckerFunc(func(ctx context.Context) error { return nil }), true)

	report := m.Report(context.Background())
	if report.Components["redis"].Status != StatusCritical {
		t.Errorf("required failure should be critical, got %s", report.Components["redis"].Status)
	}
	if report.Components["redis"].Error == "" {
		t.Error("error text should be reported")
	}
	if report.Status != StatusCritical {
		t.Errorf("overall status = %s, want critical", report.Status)
	}
}

func TestReport_OptionalFailureDegrades(t *testing.T) {
	m := NewMonitor()
	m.RegisterComponent("postgres", CheckerFunc(func(ctx context.Context) error {
		return errors.New("no database configured")
	}), false)

	report := m.Report(context.Background())
	if report.Components["postgres"].Status != StatusDegraded {
		t.Errorf("optional failure should be degraded, got %s", report.Components["postgres"].Status)
	}
	if report.Status != StatusDegraded {
		t.Errorf("overall status = %s, want degraded", report.Status)
	}
}

func TestReport_CachedWithinRateWindow(t *testing.T) {
	calls := 0
	m := NewMonitor()
	m.RegisterComponent("redis", CheckerFunc(func(ctx context.Context) error {
		calls++
		return nil
	}), true)

	m.Report(context.Background())
	m.Report(context.Background())
	if calls != 1 {
		t.Errorf("checker called %d times within the rate window, want 1", calls)
	}
}

func TestHandleSummary_CriticalIs503(t *testing.T) {
	m := NewMonitor()
	m.RegisterComponent("redis", CheckerFunc(func(ctx context.Context) error {
		return errors.New("connection refused")
	}), true)
	s := NewServer(m, 0)

	rec := httptest.NewRecorder()
	s.handleSummary(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status code = %d, want 503", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != string(StatusCritical) {
		t.Errorf("status = %q, want critical", body["status"])
	}
}

func TestHandleReport_ReturnsComponents(t *testing.T) {
	m := NewMonitor()
	m.RegisterComponent("redis", CheckerFunc(func(ctx context.Context) error { return nil }), true)
	s := NewServer(m, 0)

	rec := httptest.NewRecorder()
	s.handleReport(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.Status != StatusHealthy {
		t.Errorf("overall status = %s, want healthy", report.Status)
	}
	if _, ok := report.Components["redis"]; !ok {
		t.Errorf("redis component missing from report: %+v", report.Components)
	}
}
