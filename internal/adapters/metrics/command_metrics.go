package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Command outcome labels. Validation failures are reported apart from other
// errors since they never open a unit of work.
const (
	statusSuccess = "success"
	statusInvalid = "invalid"
	statusError   = "error"
)

// CommandMetricsCollector times mediator requests and counts their outcomes
type CommandMetricsCollector struct {
	commandDuration  *prometheus.HistogramVec
	commandsTotal    *prometheus.CounterVec
	commandsInFlight *prometheus.GaugeVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Request duration including due assignment resolution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
			},
			[]string{"command", "status"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Requests handled by type and outcome",
			},
			[]string{"command", "status"},
		),
		commandsInFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_in_flight",
				Help:      "Requests currently being handled",
			},
			[]string{"command"},
		),
	}
}

// Register adds the collector's metrics to the global registry. It is a
// no-op when metrics are disabled.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.commandDuration, c.commandsTotal, c.commandsInFlight} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// trackInFlight marks a request as started and returns the func ending it
func (c *CommandMetricsCollector) trackInFlight(commandName string) func() {
	gauge := c.commandsInFlight.WithLabelValues(commandName)
	gauge.Inc()
	return gauge.Dec
}

// RecordCommandExecution records one finished request
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, duration float64, err error) {
	status := commandStatus(err)
	c.commandDuration.WithLabelValues(commandName, status).Observe(duration)
	c.commandsTotal.WithLabelValues(commandName, status).Inc()
}

func commandStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case shared.IsValidationError(err):
		return statusInvalid
	default:
		return statusError
	}
}
