package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/adapters/persistence"
	"github.com/andrescamacho/colony-go/internal/application/colony/commands"
	"github.com/andrescamacho/colony-go/internal/application/colony/services"
	"github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/world"
	"github.com/andrescamacho/colony-go/test/helpers"
)

// scriptedCounter hands out a fixed sequence of indexes, repeating the last
type scriptedCounter struct {
	mu      sync.Mutex
	indexes []int
	calls   int
}

func (c *scriptedCounter) NextIndex(ctx context.Context, serverID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.calls
	if i >= len(c.indexes) {
		i = len(c.indexes) - 1
	}
	c.calls++
	return c.indexes[i], nil
}

func TestCreateColony_PlacesOnSpiralAndSurveysHomestead(t *testing.T) {
	// Arrange
	app, clock := helpers.NewTestApp(t)
	ctx := context.Background()

	// Act
	first, err := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{
		UserID: "user-1", ServerID: "srv-1", Name: "Hope", ServerType: "pve", ServerName: "One",
	})
	require.NoError(t, err)
	second, err := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{
		UserID: "user-2", ServerID: "srv-1",
	})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, first.Attempts)
	assert.Equal(t, "Hope", first.Colony.Name)
	assert.Equal(t, "New Colony", second.Colony.Name)
	assert.Equal(t, shared.NewLocation(0, 0), first.Colony.Placement.Location)
	assert.NotEqual(t, first.Colony.Placement.Location, second.Colony.Placement.Location)
	assert.Equal(t, 20, first.Colony.MaxInventory)
	assert.True(t, first.Colony.CreatedAt.Equal(clock.Now()))

	require.Len(t, first.Colony.Logs, 1)
	assert.Equal(t, colony.LogColonyFounded, first.Colony.Logs[0].Type)

	overview := helpers.Overview(t, ctx, app, first.Colony.ID)
	assert.Empty(t, overview.Inventory)
	assert.Empty(t, overview.Settlers)
}

func TestCreateColony_OnePerUserAndServer(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	_, err := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-1"})
	require.NoError(t, err)

	// Act
	_, dupErr := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-1"})
	other, otherErr := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-2"})

	// Assert
	assert.ErrorIs(t, dupErr, shared.ErrColonyAlreadyExists)
	require.NoError(t, otherErr)
	assert.Equal(t, shared.NewLocation(0, 0), other.Colony.Placement.Location, "each server has its own spiral")
}

func TestCreateColony_Validation(t *testing.T) {
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  *types.CreateColonyCommand
	}{
		{"missing user", &types.CreateColonyCommand{ServerID: "srv-1"}},
		{"missing server", &types.CreateColonyCommand{UserID: "user-1"}},
		{"negative step", &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-1", StepMultiplier: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := helpers.Send[*types.CreateColonyResponse](ctx, app, tt.cmd)
			assert.True(t, shared.IsValidationError(err))
		})
	}
}

func newCreateHandler(t *testing.T, counter *scriptedCounter, maxRetries int) *commands.CreateColonyHandler {
	t.Helper()
	db := helpers.NewTestDB(t)
	tables := helpers.NewTestCatalog(t)

	surveyor := services.NewSurveyor(persistence.NewGormMapTileRepository(db), world.NewTerrainGenerator(7, tables))
	return commands.NewCreateColonyHandler(
		persistence.NewGormUnitOfWork(db),
		persistence.NewGormColonyRepository(db),
		persistence.NewGormInventoryRepository(db),
		counter,
		surveyor,
		commands.PlacementSettings{StepMultiplier: 1, MaxRetries: maxRetries, MaxInventory: 10},
		shared.NewMockClock(helpers.Epoch),
	)
}

func TestCreateColony_RetriesTakenIndex(t *testing.T) {
	// Arrange
	counter := &scriptedCounter{indexes: []int{0, 0, 1}}
	handler := newCreateHandler(t, counter, 3)
	ctx := context.Background()

	_, err := handler.Handle(ctx, &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-1"})
	require.NoError(t, err)

	// Act
	resp, err := handler.Handle(ctx, &types.CreateColonyCommand{UserID: "user-2", ServerID: "srv-1"})

	// Assert
	require.NoError(t, err)
	created := resp.(*types.CreateColonyResponse)
	assert.Equal(t, 2, created.Attempts)
	assert.Equal(t, 1, created.Colony.Placement.Index)
	assert.Equal(t, 3, counter.calls)
}

func TestCreateColony_GivesUpAfterMaxRetries(t *testing.T) {
	// Arrange
	counter := &scriptedCounter{indexes: []int{0}}
	handler := newCreateHandler(t, counter, 2)
	ctx := context.Background()

	_, err := handler.Handle(ctx, &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-1"})
	require.NoError(t, err)

	// Act
	start := time.Now()
	_, err = handler.Handle(ctx, &types.CreateColonyCommand{UserID: "user-2", ServerID: "srv-1"})

	// Assert
	assert.ErrorIs(t, err, shared.ErrPlacementExhausted)
	assert.Equal(t, 3, counter.calls)
	assert.Less(t, time.Since(start), 5*time.Second, "backoff runs on the injected clock")
}
