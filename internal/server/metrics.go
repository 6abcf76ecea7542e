package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks validation outcomes and extraction health.
type Metrics struct {
	Outcomes           *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crossval_outcomes_total",
			Help: "Cross-validation outcomes by result (pass, review, fail)",
		}, []string{"result"}),
		ValidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crossval_validation_duration_seconds",
			Help:    "Duration of one cross-validation call",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// RecordOutcome classifies one validation result.
func (m *Metrics) RecordOutcome(failed, review bool) {
	switch {
	case failed:
		m.Outcomes.WithLabelValues("fail").Inc()
	case review:
		m.Outcomes.WithLabelValues("review").Inc()
	default:
		m.Outcomes.WithLabelValues("pass").Inc()
	}
}
