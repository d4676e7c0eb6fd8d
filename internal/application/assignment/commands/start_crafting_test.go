package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/adapters/persistence"
	"github.com/andrescamacho/colony-go/internal/application/assignment/commands"
	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/test/helpers"
)

type failingColonies struct {
	colony.Repository
}

func (failingColonies) Save(context.Context, *colony.Colony) error {
	return errors.New("connection reset")
}

func TestStartCrafting_RolledBackStartIsNotCounted(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	collector := metrics.NewSimulationMetricsCollector(nil)
	require.NoError(t, collector.Register())
	metrics.SetGlobalSimulationCollector(collector)
	t.Cleanup(func() {
		metrics.SetGlobalSimulationCollector(nil)
		metrics.Registry = nil
	})

	ctx := context.Background()
	db := helpers.NewTestDB(t)
	tables := helpers.NewTestCatalog(t)
	uow := persistence.NewGormUnitOfWork(db)
	colonies := persistence.NewGormColonyRepository(db)
	inventories := persistence.NewGormInventoryRepository(db)
	settlers := persistence.NewGormSettlerRepository(db)
	model := settler.NewResourceModel(tables, tables)
	starter := services.NewStarter(settlers, persistence.NewGormAssignmentRepository(db), model)
	clock := shared.NewMockClock(helpers.Epoch)

	col, err := colony.NewColony("colony-1", "user-1", "srv-1", "Hope", "pve", "One", 10, colony.Placement{}, helpers.Epoch)
	require.NoError(t, err)
	s, err := settler.NewSettler("settler-1", col.ID(), "Ada", settler.Stats{Strength: 5, Speed: 10}, nil, nil, 100, 5, helpers.Epoch)
	require.NoError(t, err)
	col.AddSettler(s.ID())
	require.NoError(t, colonies.Create(ctx, col))
	require.NoError(t, settlers.Add(ctx, s))
	inv := colony.NewInventory(col.ID())
	_, err = inv.AddRewards(map[string]int{"wood": 2}, col.MaxInventory(), tables)
	require.NoError(t, err)
	require.NoError(t, inventories.Save(ctx, inv))

	cmd := &commands.StartCraftingCommand{ColonyID: col.ID(), SettlerID: s.ID(), RecipeID: "plank"}
	broken := commands.NewStartCraftingHandler(uow, failingColonies{colonies}, inventories, settlers, tables, starter, clock)
	working := commands.NewStartCraftingHandler(uow, colonies, inventories, settlers, tables, starter, clock)

	// Act
	_, failErr := broken.Handle(ctx, cmd)
	failedCount, gatherErr := testutil.GatherAndCount(metrics.Registry, "colony_sim_assignments_started_total")
	require.NoError(t, gatherErr)
	_, okErr := working.Handle(ctx, cmd)

	// Assert
	require.Error(t, failErr)
	assert.Equal(t, 0, failedCount, "a rolled back start is not counted")

	require.NoError(t, okErr, "the failed start left inputs and settler untouched")
	count, err := testutil.GatherAndCount(metrics.Registry, "colony_sim_assignments_started_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
