// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysisJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_analysis_jobs_completed_total",
			Help: "Total number of analysis jobs completed per stage",
		},
		[]string{"task_type"},
	)

	AnalysisJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_analysis_jobs_failed_total",
			Help: "Total number of analysis jobs failed per stage",
		},
		[]string{"task_type", "error_code"},
	)

	AnalysisJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "credit_analysis_job_duration_seconds",
			Help: "Duration of analysis job processing in seconds",
		},
		[]string{"task_type"},
	)

	AnalysisJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "credit_analysis_jobs_active",
			Help: "Number of in-flight analysis jobs per stage",
		},
		[]string{"task_type"},
	)

	DecisionsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_decisions_issued_total",
			Help: "Total number of credit decisions issued",
		},
		[]string{"decision", "risk_level"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_validation_failures_total",
			Help: "Total number of input validation failures by error kind",
		},
		[]string{"error"},
	)
)
