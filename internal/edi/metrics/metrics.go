package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the conversion pipeline.
type Metrics struct {
	// Conversion outcomes by status and transaction set
	Conversions *prometheus.CounterVec

	// Build findings by severity
	Findings *prometheus.CounterVec

	// Segments emitted per transaction set
	SegmentsBuilt *prometheus.CounterVec

	// LLM extraction latency
	ExtractionLatency prometheus.Histogram
}

// New creates a Metrics instance with all conversion metrics registered.
func New() *Metrics {
	return &Metrics{
		Conversions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mercury_conversions_total",
			Help: "Total conversion requests by final status and transaction set",
		}, []string{"status", "transaction_set"}),

		Findings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mercury_build_findings_total",
			Help: "Total validation and build findings by severity",
		}, []string{"severity"}),

		SegmentsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mercury_segments_built_total",
			Help: "Total EDI segments emitted by transaction set",
		}, []string{"transaction_set"}),

		ExtractionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mercury_extraction_duration_seconds",
			Help:    "Duration of LLM structured extraction calls",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

// IncrementConversion records a finished conversion.
func (m *Metrics) IncrementConversion(status, transactionSet string) {
	if m != nil {
		m.Conversions.WithLabelValues(status, transactionSet).Inc()
	}
}

// IncrementFindings records findings by severity.
func (m *Metrics) IncrementFindings(severity string, count int) {
	if m != nil && count > 0 {
		m.Findings.WithLabelValues(severity).Add(float64(count))
	}
}

// AddSegments records emitted segments.
func (m *Metrics) AddSegments(transactionSet string, count int) {
	if m != nil && count > 0 {
		m.SegmentsBuilt.WithLabelValues(transactionSet).Add(float64(count))
	}
}

// ObserveExtractionLatency records the duration of one extraction call.
func (m *Metrics) ObserveExtractionLatency(d time.Duration) {
	if m != nil {
		m.ExtractionLatency.Observe(d.Seconds())
	}
}
