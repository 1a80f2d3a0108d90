package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

const namespace = "workout_locator"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// snapshot pipeline and the core transforms.
type Metrics struct {
	WorkoutsLoaded prometheus.Gauge
	RegionsBuilt   prometheus.Gauge
	PipelineReady  prometheus.Gauge

	// Snapshot refresh metrics.
	Refreshes       *prometheus.CounterVec // labels: outcome={success,error}
	RefreshDuration prometheus.Histogram

	// Recoveries made by the scheduler and viewport calculator.
	Anomalies *prometheus.CounterVec // labels: kind={unparseable_time,unknown_day,invalid_coordinate}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.WorkoutsLoaded,
		m.RegionsBuilt,
		m.PipelineReady,
		m.Refreshes,
		m.RefreshDuration,
		m.Anomalies,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		WorkoutsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workouts_loaded",
			Help:      "Workouts in the current snapshot.",
		}),
		RegionsBuilt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regions",
			Help:      "Region reports in the current snapshot.",
		}),
		PipelineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_ready",
			Help:      "1 once a snapshot has been published, 0 before.",
		}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refreshes_total",
			Help:      "Snapshot refresh attempts by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_refresh_duration_seconds",
			Help:      "Duration of loading a snapshot and building every region report.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		Anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_total",
			Help:      "Feed records recovered by the scheduler or viewport calculator, by kind.",
		}, []string{"kind"}),
	}
}

// RecordAnomaly implements domain.AnomalyRecorder.
func (m *Metrics) RecordAnomaly(kind domain.AnomalyKind) {
	m.Anomalies.WithLabelValues(string(kind)).Inc()
}
