// Package metrics defines the prometheus collectors for the sandbox service.
// Collectors are registered at import time via promauto and exposed on
// /metrics by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandbox_executions_total",
			Help: "Total number of code executions",
		},
		[]string{"language", "status"}, // status: "success", "error", "simulated"
	)

	ExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sandbox_execution_duration_ms",
			Help:    "Execution duration in milliseconds",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"language", "phase"}, // phase: "compile", "run", "total"
	)

	TestCasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandbox_test_cases_total",
			Help: "Total number of test-case verdicts produced",
		},
		[]string{"language", "verdict"}, // verdict: "passed", "failed"
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sandbox_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
