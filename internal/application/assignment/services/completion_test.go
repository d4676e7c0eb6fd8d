package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/adapters/persistence"
	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	colonyServices "github.com/andrescamacho/colony-go/internal/application/colony/services"
	"github.com/andrescamacho/colony-go/internal/application/common"
	settlerServices "github.com/andrescamacho/colony-go/internal/application/settler/services"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/world"
	"github.com/andrescamacho/colony-go/test/helpers"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type logLine struct {
	level   string
	message string
	meta    map[string]interface{}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level: level, message: message, meta: metadata})
}

func (l *recordingLogger) byLevel(level string) []logLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logLine
	for _, line := range l.lines {
		if line.level == level {
			out = append(out, line)
		}
	}
	return out
}

type fixture struct {
	uow         *persistence.GormUnitOfWork
	colonies    *persistence.GormColonyRepository
	inventories *persistence.GormInventoryRepository
	settlers    *persistence.GormSettlerRepository
	assignments *persistence.GormAssignmentRepository
	model       *settler.ResourceModel
	completion  *services.CompletionService
	newService  func(inventories colony.InventoryRepository) *services.CompletionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	tables := helpers.NewTestCatalog(t)

	f := &fixture{
		uow:         persistence.NewGormUnitOfWork(db),
		colonies:    persistence.NewGormColonyRepository(db),
		inventories: persistence.NewGormInventoryRepository(db),
		settlers:    persistence.NewGormSettlerRepository(db),
		assignments: persistence.NewGormAssignmentRepository(db),
		model:       settler.NewResourceModel(tables, tables),
	}
	surveyor := colonyServices.NewSurveyor(persistence.NewGormMapTileRepository(db), world.NewTerrainGenerator(7, tables))
	recruiter := settlerServices.NewRecruiter(tables, 7, 100, 5)
	f.newService = func(inventories colony.InventoryRepository) *services.CompletionService {
		return services.NewCompletionService(
			f.uow, f.colonies, inventories, f.settlers, f.assignments, tables, f.model, recruiter, surveyor,
		)
	}
	f.completion = f.newService(f.inventories)
	return f
}

// seed stores a colony with maxInventory slots and one weak settler
func (f *fixture) seed(t *testing.T, maxInventory int) (*colony.Colony, *settler.Settler) {
	t.Helper()
	ctx := context.Background()

	col, err := colony.NewColony("colony-1", "user-1", "srv-1", "Hope", "pve", "One", maxInventory, colony.Placement{}, t0)
	require.NoError(t, err)
	s, err := settler.NewSettler("settler-1", col.ID(), "Ada", settler.Stats{Strength: 2, Speed: 10}, nil, nil, 100, 5, t0)
	require.NoError(t, err)
	col.AddSettler(s.ID())

	require.NoError(t, f.colonies.Create(ctx, col))
	require.NoError(t, f.settlers.Add(ctx, s))
	require.NoError(t, f.inventories.Save(ctx, colony.NewInventory(col.ID())))
	return col, s
}

// craft stores an in-progress crafting assignment finishing after an hour
func (f *fixture) craft(t *testing.T, s *settler.Settler, settlerID string, rewards map[string]int) *assignment.Assignment {
	t.Helper()
	return f.start(t, s, settlerID, assignment.TypeCrafting, rewards)
}

// start stores an in-progress assignment of the given type finishing after an hour
func (f *fixture) start(t *testing.T, s *settler.Settler, settlerID string, typ assignment.Type, rewards map[string]int) *assignment.Assignment {
	t.Helper()
	ctx := context.Background()

	a, err := assignment.New("assignment-1", "colony-1", typ, string(typ), time.Hour.Milliseconds(), rewards, nil, t0)
	require.NoError(t, err)
	require.NoError(t, a.Start(settlerID, assignment.Adjustments{AdjustedDuration: time.Hour.Milliseconds(), EffectiveSpeed: 1, LootMultiplier: 1}, rewards, t0))
	require.NoError(t, f.assignments.Add(ctx, a))

	if s != nil {
		f.model.ChangeStatus(s, assignment.ActivityStatusFor(typ), t0)
		require.NoError(t, f.settlers.Save(ctx, s))
	}
	return a
}

type fixedRoller float64

func (r fixedRoller) Float64() float64 { return float64(r) }

type failingInventories struct {
	colony.InventoryRepository
}

func (failingInventories) Save(context.Context, *colony.Inventory) error {
	return errors.New("disk full")
}

func TestCompleteDue_RewardsOverflowIsLost(t *testing.T) {
	// Arrange
	f := newFixture(t)
	col, s := f.seed(t, 5)
	f.craft(t, s, s.ID(), map[string]int{"stone": 5})
	ctx := context.Background()

	// Act
	result, err := f.completion.CompleteDue(ctx, col.ID(), t0.Add(3*time.Hour))

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Completed, 1)
	done := result.Completed[0]
	assert.Equal(t, map[string]int{"stone": 2}, done.Lost, "capacity 10 holds three stones of weight 3")
	assert.Equal(t, map[string]int{"stone": 3}, done.Transferred)
	assert.Empty(t, done.Kept)
	assert.True(t, done.CompletedAt.Equal(t0.Add(time.Hour)))

	stored, err := f.settlers.FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, settler.StatusIdle, stored.Status())
	assert.True(t, stored.EnergyLastUpdated().Equal(t0.Add(time.Hour)), "settler goes idle when the assignment finished")
	assert.Empty(t, stored.Carry())

	inv, err := f.inventories.FindByColony(ctx, col.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Quantity("stone"))

	reloaded, err := f.colonies.FindByID(ctx, col.ID())
	require.NoError(t, err)
	var logTypes []string
	for _, l := range reloaded.Logs() {
		logTypes = append(logTypes, l.Type)
	}
	assert.Equal(t, []string{colony.LogColonyFounded, colony.LogLostItems, colony.LogAssignmentCompleted}, logTypes)

	a, err := f.assignments.FindByID(ctx, "assignment-1")
	require.NoError(t, err)
	assert.Equal(t, assignment.StateCompleted, a.State())
}

func TestCompleteDue_FullInventoryLeavesItemsWithSettler(t *testing.T) {
	// Arrange
	f := newFixture(t)
	col, s := f.seed(t, 1)
	ctx := context.Background()

	inv := colony.NewInventory(col.ID())
	_, err := inv.AddRewards(map[string]int{"wood": 1}, 1, helpers.NewTestCatalog(t))
	require.NoError(t, err)
	require.NoError(t, f.inventories.Save(ctx, inv))
	f.craft(t, s, s.ID(), map[string]int{"plank": 2, "wood": 3})

	// Act
	result, err := f.completion.CompleteDue(ctx, col.ID(), t0.Add(time.Hour))

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Completed, 1)
	assert.Equal(t, map[string]int{"wood": 3}, result.Completed[0].Transferred)
	assert.Equal(t, map[string]int{"plank": 2}, result.Completed[0].Kept)

	stored, err := f.settlers.FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Carried("plank"))
}

func TestCompleteDue_MissingSettlerStillCompletes(t *testing.T) {
	// Arrange
	f := newFixture(t)
	col, _ := f.seed(t, 5)
	f.craft(t, nil, "settler-gone", map[string]int{"plank": 1})
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	result, err := f.completion.CompleteDue(ctx, col.ID(), t0.Add(2*time.Hour))

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Completed, 1)
	assert.Empty(t, result.Completed[0].Transferred)

	warnings := logger.byLevel("WARNING")
	require.Len(t, warnings, 1)
	assert.Equal(t, "settler-gone", warnings[0].meta["settler_id"])
}

func TestCompleteDue_NothingDue(t *testing.T) {
	// Arrange
	f := newFixture(t)
	col, s := f.seed(t, 5)
	f.craft(t, s, s.ID(), map[string]int{"plank": 1})

	// Act
	result, err := f.completion.CompleteDue(context.Background(), col.ID(), t0.Add(59*time.Minute))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, result.Completed)

	a, err := f.assignments.FindByID(context.Background(), "assignment-1")
	require.NoError(t, err)
	assert.Equal(t, assignment.StateInProgress, a.State())
}

func TestCompleteDue_NoRewardsKeepsSettlerCarry(t *testing.T) {
	// Arrange
	f := newFixture(t)
	col, s := f.seed(t, 5)
	ctx := context.Background()
	_, err := f.model.AddItems(s, "wood", 3)
	require.NoError(t, err)
	f.start(t, s, s.ID(), assignment.TypeResting, nil)
	f.completion.WithRoller(fixedRoller(0.99))

	// Act
	result, err := f.completion.CompleteDue(ctx, col.ID(), t0.Add(2*time.Hour))

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Completed, 1)
	assert.Empty(t, result.Completed[0].Transferred)
	assert.Empty(t, result.Completed[0].Kept)

	stored, err := f.settlers.FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, settler.StatusIdle, stored.Status())
	assert.Equal(t, 3, stored.Carried("wood"), "carry stays with the settler when nothing is rewarded")

	inv, err := f.inventories.FindByColony(ctx, col.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Quantity("wood"))
}

func TestCompleteDue_DiscoveryAddsSettler(t *testing.T) {
	// Arrange
	f := newFixture(t)
	col, s := f.seed(t, 5)
	ctx := context.Background()
	f.start(t, s, s.ID(), assignment.TypeResting, nil)
	f.completion.WithRoller(fixedRoller(0))

	// Act
	result, err := f.completion.CompleteDue(ctx, col.ID(), t0.Add(time.Hour))

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Completed, 1)
	foundID := result.Completed[0].SettlerFoundID
	require.NotEmpty(t, foundID)

	found, err := f.settlers.FindByID(ctx, foundID)
	require.NoError(t, err)
	assert.Equal(t, col.ID(), found.ColonyID())

	members, err := f.settlers.FindByColony(ctx, col.ID())
	require.NoError(t, err)
	assert.Len(t, members, 2)

	a, err := f.assignments.FindByID(ctx, "assignment-1")
	require.NoError(t, err)
	assert.Equal(t, foundID, a.SettlerFoundID())

	reloaded, err := f.colonies.FindByID(ctx, col.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{s.ID(), foundID}, reloaded.SettlerIDs())
	var logTypes []string
	for _, l := range reloaded.Logs() {
		logTypes = append(logTypes, l.Type)
	}
	assert.Equal(t, []string{colony.LogColonyFounded, colony.LogSettlerFound, colony.LogAssignmentCompleted}, logTypes)
}

func TestCompleteDue_DiscoveryRollsBackWithFailedRun(t *testing.T) {
	// Arrange
	f := newFixture(t)
	col, s := f.seed(t, 5)
	ctx := context.Background()
	f.start(t, s, s.ID(), assignment.TypeResting, nil)
	completion := f.newService(failingInventories{f.inventories}).WithRoller(fixedRoller(0))

	// Act
	_, err := completion.CompleteDue(ctx, col.ID(), t0.Add(time.Hour))

	// Assert
	require.Error(t, err)

	members, err := f.settlers.FindByColony(ctx, col.ID())
	require.NoError(t, err)
	assert.Len(t, members, 1, "discovered settler is rolled back with the run")

	a, err := f.assignments.FindByID(ctx, "assignment-1")
	require.NoError(t, err)
	assert.Equal(t, assignment.StateInProgress, a.State())
	assert.Empty(t, a.SettlerFoundID())
}
