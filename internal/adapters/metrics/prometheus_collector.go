package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "colony"
	// Subsystem for simulation metrics
	subsystem = "sim"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSimulationCollector is set by SetGlobalSimulationCollector when metrics are enabled
	globalSimulationCollector SimulationMetricsRecorder

	// globalSweepCollector is set by SetGlobalSweepCollector when metrics are enabled
	globalSweepCollector SweepMetricsRecorder
)

// SimulationMetricsRecorder records events of the colony simulation core
type SimulationMetricsRecorder interface {
	RecordAssignmentStarted(assignmentType string)
	RecordAssignmentCompleted(assignmentType string)
	RecordSettlerDiscovered(assignmentType string)
	RecordItemsLost(itemID string, quantity int)
	RecordColonyCreated(attempts int)
	RecordPlacementCollision(serverID string)
}

// SweepMetricsRecorder records scheduled sweep runs
type SweepMetricsRecorder interface {
	RecordSweep(durationSeconds float64, colonies, failures, completed int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSimulationCollector sets the global simulation metrics collector
func SetGlobalSimulationCollector(collector SimulationMetricsRecorder) {
	globalSimulationCollector = collector
}

// SetGlobalSweepCollector sets the global sweep metrics collector
func SetGlobalSweepCollector(collector SweepMetricsRecorder) {
	globalSweepCollector = collector
}

// RecordAssignmentStarted records an assignment start globally
func RecordAssignmentStarted(assignmentType string) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordAssignmentStarted(assignmentType)
	}
}

// RecordAssignmentCompleted records an assignment completion globally
func RecordAssignmentCompleted(assignmentType string) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordAssignmentCompleted(assignmentType)
	}
}

// RecordSettlerDiscovered records a settler found on completion globally
func RecordSettlerDiscovered(assignmentType string) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordSettlerDiscovered(assignmentType)
	}
}

// RecordItemsLost records reward overflow globally
func RecordItemsLost(itemID string, quantity int) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordItemsLost(itemID, quantity)
	}
}

// RecordColonyCreated records a successful colony placement globally
func RecordColonyCreated(attempts int) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordColonyCreated(attempts)
	}
}

// RecordPlacementCollision records a spiral index collision globally
func RecordPlacementCollision(serverID string) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordPlacementCollision(serverID)
	}
}

// RecordSweep records one sweep run globally
func RecordSweep(durationSeconds float64, colonies, failures, completed int) {
	if globalSweepCollector != nil {
		globalSweepCollector.RecordSweep(durationSeconds, colonies, failures, completed)
	}
}
