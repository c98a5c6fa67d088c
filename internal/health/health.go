// Package health provides system health monitoring and status reporting.
package health

import "time"

// SystemStatus represents the overall health state of the system or a component.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// severity orders statuses so that aggregation can take the worst case.
var severity = map[SystemStatus]int{
	StatusHealthy:  0,
	StatusDegraded: 1,
	StatusCritical: 2,
}

// ComponentHealth contains the health state of one backing component.
type ComponentHealth struct {
	Component string       `json:"component"`
	Status    SystemStatus `json:"status"`
	Error     string       `json:"error,omitempty"`
}

// Report is a full health snapshot: the worst-case overall status plus the
// per-component breakdown that produced it.
type Report struct {
	Status     SystemStatus               `json:"status"`
	CheckedAt  time.Time                  `json:"checkedAt"`
	Components map[string]ComponentHealth `json:"components"`
}
