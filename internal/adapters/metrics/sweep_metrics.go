package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SweepMetricsCollector handles scheduled sweep metrics
type SweepMetricsCollector struct {
	sweepDuration   prometheus.Histogram
	sweepRuns       prometheus.Counter
	coloniesSwept   *prometheus.CounterVec
	sweepCompleted  prometheus.Counter
	lastSweepMillis prometheus.Gauge
}

// NewSweepMetricsCollector creates a new sweep metrics collector
func NewSweepMetricsCollector() *SweepMetricsCollector {
	return &SweepMetricsCollector{
		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_duration_seconds",
				Help:      "Duration of a full sweep over all colonies",
				Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
			},
		),
		sweepRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_runs_total",
				Help:      "Number of sweep runs",
			},
		),
		coloniesSwept: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_colonies_total",
				Help:      "Colonies processed by the sweep by outcome",
			},
			[]string{"status"},
		),
		sweepCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_assignments_completed_total",
				Help:      "Assignments completed by sweep runs",
			},
		),
		lastSweepMillis: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_last_duration_milliseconds",
				Help:      "Duration of the most recent sweep",
			},
		),
	}
}

// Register registers all sweep metrics with the Prometheus registry
func (c *SweepMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.sweepDuration,
		c.sweepRuns,
		c.coloniesSwept,
		c.sweepCompleted,
		c.lastSweepMillis,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSweep records one sweep run
func (c *SweepMetricsCollector) RecordSweep(durationSeconds float64, colonies, failures, completed int) {
	c.sweepRuns.Inc()
	c.sweepDuration.Observe(durationSeconds)
	c.lastSweepMillis.Set(durationSeconds * 1000)
	c.coloniesSwept.WithLabelValues("success").Add(float64(colonies - failures))
	c.coloniesSwept.WithLabelValues("error").Add(float64(failures))
	c.sweepCompleted.Add(float64(completed))
}
