package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
)

// SimulationMetricsCollector handles assignment, discovery and placement metrics
type SimulationMetricsCollector struct {
	// Dependencies
	colonies colony.Repository

	assignmentsStarted   *prometheus.CounterVec
	assignmentsCompleted *prometheus.CounterVec
	settlersDiscovered   *prometheus.CounterVec
	itemsLost            *prometheus.CounterVec
	coloniesCreated      prometheus.Counter
	placementAttempts    prometheus.Histogram
	placementCollisions  *prometheus.CounterVec
	coloniesTotal        prometheus.Gauge

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector(colonies colony.Repository) *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		colonies: colonies,

		assignmentsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "assignments_started_total",
				Help:      "Assignments moved to in-progress by type",
			},
			[]string{"type"},
		),

		assignmentsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "assignments_completed_total",
				Help:      "Assignments completed by type",
			},
			[]string{"type"},
		),

		settlersDiscovered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "settlers_discovered_total",
				Help:      "Settlers found on assignment completion by assignment type",
			},
			[]string{"type"},
		),

		itemsLost: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "items_lost_total",
				Help:      "Reward units lost because the settler could not carry them",
			},
			[]string{"item"},
		),

		coloniesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "colonies_created_total",
				Help:      "Colonies founded",
			},
		),

		placementAttempts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "placement_attempts",
				Help:      "Spiral placement attempts needed per founded colony",
				Buckets:   []float64{1, 2, 3, 4, 5, 8},
			},
		),

		placementCollisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "placement_collisions_total",
				Help:      "Spiral index collisions during colony creation",
			},
			[]string{"server_id"},
		),

		coloniesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "colonies",
				Help:      "Number of colonies in the store",
			},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.assignmentsStarted,
		c.assignmentsCompleted,
		c.settlersDiscovered,
		c.itemsLost,
		c.coloniesCreated,
		c.placementAttempts,
		c.placementCollisions,
		c.coloniesTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins polling the colony count
func (c *SimulationMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollColonies(interval)
}

// Stop gracefully stops the collector
func (c *SimulationMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *SimulationMetricsCollector) pollColonies(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.updateColonyCount()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateColonyCount()
		}
	}
}

func (c *SimulationMetricsCollector) updateColonyCount() {
	if c.colonies == nil {
		return
	}
	ids, err := c.colonies.ListIDs(c.ctx)
	if err != nil {
		log.Printf("Failed to count colonies for metrics: %v", err)
		return
	}
	c.coloniesTotal.Set(float64(len(ids)))
}

func (c *SimulationMetricsCollector) RecordAssignmentStarted(assignmentType string) {
	c.assignmentsStarted.WithLabelValues(assignmentType).Inc()
}

func (c *SimulationMetricsCollector) RecordAssignmentCompleted(assignmentType string) {
	c.assignmentsCompleted.WithLabelValues(assignmentType).Inc()
}

func (c *SimulationMetricsCollector) RecordSettlerDiscovered(assignmentType string) {
	c.settlersDiscovered.WithLabelValues(assignmentType).Inc()
}

func (c *SimulationMetricsCollector) RecordItemsLost(itemID string, quantity int) {
	c.itemsLost.WithLabelValues(itemID).Add(float64(quantity))
}

func (c *SimulationMetricsCollector) RecordColonyCreated(attempts int) {
	c.coloniesCreated.Inc()
	c.placementAttempts.Observe(float64(attempts))
}

func (c *SimulationMetricsCollector) RecordPlacementCollision(serverID string) {
	c.placementCollisions.WithLabelValues(serverID).Inc()
}
