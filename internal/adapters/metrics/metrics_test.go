package metrics_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/adapters/persistence"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/mediator"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/test/helpers"
)

// freshRegistry installs an empty registry and clears the global recorders
// when the test ends
func freshRegistry(t *testing.T) {
	t.Helper()
	metrics.InitRegistry()
	t.Cleanup(func() {
		metrics.SetGlobalSimulationCollector(nil)
		metrics.SetGlobalSweepCollector(nil)
		metrics.Registry = nil
	})
}

func TestPrometheusMiddleware_CountsOutcomes(t *testing.T) {
	// Arrange
	freshRegistry(t)
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := metrics.PrometheusMiddleware(collector)

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return &types.ListAssignmentsResponse{}, nil
	}
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	}
	invalid := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, shared.NewValidationError("assignment_id", "cannot be empty")
	}

	// Act
	_, err := mw(context.Background(), &types.ListAssignmentsQuery{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &types.ListAssignmentsQuery{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &types.InformAssignmentCommand{}, fail)
	require.Error(t, err)
	_, err = mw(context.Background(), &types.InformAssignmentCommand{}, invalid)
	require.Error(t, err)

	// Assert
	expected := `
# HELP colony_sim_commands_total Requests handled by type and outcome
# TYPE colony_sim_commands_total counter
colony_sim_commands_total{command="InformAssignmentCommand",status="error"} 1
colony_sim_commands_total{command="InformAssignmentCommand",status="invalid"} 1
colony_sim_commands_total{command="ListAssignmentsQuery",status="success"} 2
# HELP colony_sim_commands_in_flight Requests currently being handled
# TYPE colony_sim_commands_in_flight gauge
colony_sim_commands_in_flight{command="InformAssignmentCommand"} 0
colony_sim_commands_in_flight{command="ListAssignmentsQuery"} 0
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected),
		"colony_sim_commands_total", "colony_sim_commands_in_flight"))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := metrics.PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), &types.ListAssignmentsQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return &types.ListAssignmentsResponse{}, nil
	})

	require.NoError(t, err)
	assert.IsType(t, &types.ListAssignmentsResponse{}, resp)
}

func TestRecordSweep_UpdatesSweepSeries(t *testing.T) {
	// Arrange
	freshRegistry(t)
	collector := metrics.NewSweepMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalSweepCollector(collector)

	// Act
	metrics.RecordSweep(0.25, 4, 1, 7)

	// Assert
	expected := `
# HELP colony_sim_sweep_colonies_total Colonies processed by the sweep by outcome
# TYPE colony_sim_sweep_colonies_total counter
colony_sim_sweep_colonies_total{status="error"} 1
colony_sim_sweep_colonies_total{status="success"} 3
# HELP colony_sim_sweep_assignments_completed_total Assignments completed by sweep runs
# TYPE colony_sim_sweep_assignments_completed_total counter
colony_sim_sweep_assignments_completed_total 7
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected),
		"colony_sim_sweep_colonies_total", "colony_sim_sweep_assignments_completed_total"))
}

func TestRecorders_AreNoOpsWhenDisabled(t *testing.T) {
	metrics.SetGlobalSimulationCollector(nil)
	metrics.SetGlobalSweepCollector(nil)

	assert.NotPanics(t, func() {
		metrics.RecordAssignmentStarted("quest")
		metrics.RecordAssignmentCompleted("quest")
		metrics.RecordSettlerDiscovered("exploration")
		metrics.RecordItemsLost("stone", 2)
		metrics.RecordColonyCreated(1)
		metrics.RecordPlacementCollision("srv-1")
		metrics.RecordSweep(1, 1, 0, 0)
	})
	assert.False(t, metrics.IsEnabled())
}

func TestSimulationCollector_PollsColonyCount(t *testing.T) {
	// Arrange
	freshRegistry(t)
	repo := persistence.NewGormColonyRepository(helpers.NewTestDB(t))
	for i, id := range []string{"colony-a", "colony-b"} {
		c, err := colony.NewColony(id, "user-"+id, "srv-1", "Hope", "pve", "One", 10, colony.Placement{Index: i}, helpers.Epoch)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), c))
	}

	collector := metrics.NewSimulationMetricsCollector(repo)
	require.NoError(t, collector.Register())
	metrics.SetGlobalSimulationCollector(collector)

	// Act
	collector.Start(context.Background(), time.Hour)
	metrics.RecordColonyCreated(2)
	metrics.RecordItemsLost("stone", 3)

	// Assert
	expected := `
# HELP colony_sim_colonies Number of colonies in the store
# TYPE colony_sim_colonies gauge
colony_sim_colonies 2
`
	require.Eventually(t, func() bool {
		return testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "colony_sim_colonies") == nil
	}, time.Second, 10*time.Millisecond)
	collector.Stop()

	count, err := testutil.GatherAndCount(metrics.Registry, "colony_sim_items_lost_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
