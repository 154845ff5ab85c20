package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	IssuesSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "issues_submitted_total",
			Help: "Total number of issue submissions accepted",
		},
	)

	EnrichmentIncompleteTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_incomplete_total",
			Help: "Submissions that could not be fully enriched, by reason",
		},
		[]string{"reason"},
	)

	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_transitions_total",
			Help: "Total number of issue status transitions, by target status",
		},
		[]string{"status"},
	)

	InvalidTransitionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invalid_transitions_total",
			Help: "Status transitions rejected by the lifecycle rules",
		},
	)

	IssueViewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "issue_views_total",
			Help: "Total number of issue detail views",
		},
	)

	SubmitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "issue_submit_duration_seconds",
			Help:    "Duration of issue submission handling",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func Register() {
	prometheus.MustRegister(
		IssuesSubmittedTotal,
		EnrichmentIncompleteTotal,
		StatusTransitionsTotal,
		InvalidTransitionsTotal,
		IssueViewsTotal,
		SubmitDuration,
	)
}
