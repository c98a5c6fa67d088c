package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks dispatched requests per method and outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedin_mcp_requests_total",
			Help: "Total number of dispatched requests",
		},
		[]string{"method", "outcome"},
	)

	// RetriesTotal tracks retry attempts per method.
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedin_mcp_retries_total",
			Help: "Total number of retry attempts",
		},
		[]string{"method"},
	)

	// DispatchLatency tracks end-to-end dispatch latency including backoff.
	DispatchLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linkedin_mcp_dispatch_latency_seconds",
			Help:    "Dispatch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// LinkedInCallsTotal tracks outbound LinkedIn API calls.
	LinkedInCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedin_mcp_linkedin_calls_total",
			Help: "Total number of LinkedIn API calls",
		},
		[]string{"category", "status"},
	)

	// DocumentsGenerated tracks generated resumes and cover letters.
	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedin_mcp_documents_generated_total",
			Help: "Total number of generated documents",
		},
		[]string{"kind", "format"},
	)
)
