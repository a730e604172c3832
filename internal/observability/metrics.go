package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Extraction metrics.
	Extractions      *prometheus.CounterVec // labels: operator, outcome={ok,unknown_format,invalid_coordinates,empty_document}
	ProjectionErrors *prometheus.CounterVec // labels: projection={utm,gauss_kruger}

	// Postgres sink metrics.
	StoreInserts  *prometheus.CounterVec // labels: outcome={inserted,duplicate}
	StoreEnabled  prometheus.Gauge
	StoreDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "messages_consumed_total",
			Help:      "Total report documents read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "messages_produced_total",
			Help:      "Total normalized incidents written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "transform_errors_total",
			Help:      "Total documents rejected during transformation.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incident_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_etl",
			Name:      "batch_size",
			Help:      "Number of documents per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "extractions_total",
			Help:      "Document extractions by operator and outcome.",
		}, []string{"operator", "outcome"}),
		ProjectionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "projection_errors_total",
			Help:      "Coordinate projection failures by target grid.",
		}, []string{"projection"}),
		StoreInserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "store_inserts_total",
			Help:      "Postgres insert results by outcome.",
		}, []string{"outcome"}),
		StoreEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incident_etl",
			Name:      "store_enabled",
			Help:      "1 when the Postgres sink is enabled, 0 otherwise.",
		}),
		StoreDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_etl",
			Name:      "store_batch_duration_seconds",
			Help:      "Duration of a Postgres batch insert.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Extractions,
		m.ProjectionErrors,
		m.StoreInserts,
		m.StoreEnabled,
		m.StoreDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_etl", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_etl", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "incident_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "incident_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "incident_etl", Name: "batch_processing_duration_seconds"}),
		Extractions:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "incident_etl", Name: "extractions_total"}, []string{"operator", "outcome"}),
		ProjectionErrors:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "incident_etl", Name: "projection_errors_total"}, []string{"projection"}),
		StoreInserts:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "incident_etl", Name: "store_inserts_total"}, []string{"outcome"}),
		StoreEnabled:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "incident_etl", Name: "store_enabled"}),
		StoreDuration:           prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "incident_etl", Name: "store_batch_duration_seconds"}),
	}
}
