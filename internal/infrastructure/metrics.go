package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the data-quality and throughput counters the pipeline
// increments. The core engine stays pure; only the orchestration layer
// touches these.
type Metrics struct {
	ReportsGenerated     prometheus.Counter
	UnmatchedCells       prometheus.Counter
	EmptyCells           prometheus.Counter
	RespondentsExcluded  prometheus.Counter
	RespondentsProcessed prometheus.Counter
}

// NewMetrics creates and registers the pipeline metrics on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tma_reports_generated_total",
			Help: "Number of survey reports generated.",
		}),
		UnmatchedCells: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tma_unmatched_cells_total",
			Help: "Number of response cells that did not match the Likert vocabulary.",
		}),
		EmptyCells: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tma_empty_cells_total",
			Help: "Number of blank response cells.",
		}),
		RespondentsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tma_respondents_excluded_total",
			Help: "Number of respondents dropped for having no valid scores.",
		}),
		RespondentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tma_respondents_processed_total",
			Help: "Number of respondents carried into calculated datasets.",
		}),
	}

	reg.MustRegister(
		m.ReportsGenerated,
		m.UnmatchedCells,
		m.EmptyCells,
		m.RespondentsExcluded,
		m.RespondentsProcessed,
	)

	return m
}
