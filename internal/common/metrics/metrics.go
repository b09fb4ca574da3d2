// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LeadsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_leads_ingested_total",
			Help: "Total number of leads that passed row validation",
		},
	)

	LeadsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_leads_skipped_total",
			Help: "Total number of CSV rows rejected during validation",
		},
	)

	AssignmentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_assignments_total",
			Help: "Total number of lead-to-company assignments",
		},
		[]string{"company", "segment"},
	)

	EmailsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_emails_rendered_total",
			Help: "Total number of emails rendered per company",
		},
		[]string{"company"},
	)

	IcebreakersGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_icebreakers_total",
			Help: "Total number of icebreakers by source (ai or fallback)",
		},
		[]string{"source"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of each pipeline stage in seconds",
		},
		[]string{"stage"},
	)
)
