package health

import (
	"context"
	"sync"
	"time"
)

// Checks are rate limited to avoid hammering backends.
const checkInterval = 10 * time.Second

// Checker is implemented by components that can report their own health.
type Checker interface {
	Health(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Health(ctx context.Context) error { return f(ctx) }

// Monitor probes the backing components and aggregates them into a Report.
type Monitor struct {
	checkers map[string]Checker
	required map[string]bool
	last     Report
	mu       sync.Mutex
}

// NewMonitor creates an empty health monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		checkers: make(map[string]Checker),
		required: make(map[string]bool),
	}
}

// RegisterComponent adds a component to the report. A failing required
// component is critical; a failing optional one only degrades the system.
func (m *Monitor) RegisterComponent(name string, checker Checker, required bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers[name] = checker
	m.required[name] = required
}

// Report probes every registered component and returns the aggregated
// snapshot. The overall status is the worst component status. Results are
// cached for checkInterval.
func (m *Monitor) Report(ctx context.Context) Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.last.CheckedAt) < checkInterval && len(m.last.Components) > 0 {
		return m.last
	}

	report := Report{
		Status:     StatusHealthy,
		CheckedAt:  time.Now(),
		Components: make(map[string]ComponentHealth, len(m.checkers)),
	}
	for name, checker := range m.checkers {
		ch := ComponentHealth{Component: name, Status: StatusHealthy}
		if err := checker.Health(ctx); err != nil {
			ch.Error = err.Error()
			if m.required[name] {
				ch.Status = StatusCritical
			} else {
				ch.Status = StatusDegraded
			}
		}
		if severity[ch.Status] > severity[report.Status] {
			report.Status = ch.Status
		}
		report.Components[name] = ch
	}

	m.last = report
	return report
}
