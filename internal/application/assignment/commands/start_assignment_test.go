package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
	"github.com/andrescamacho/colony-go/test/helpers"
)

// syncQuests creates the colony's quest assignments and indexes them by task
func syncQuests(t *testing.T, ctx context.Context, app *bootstrap.App, colonyID string) map[string]types.AssignmentView {
	t.Helper()
	resp, err := helpers.Send[*types.SyncQuestAssignmentsResponse](ctx, app, &types.SyncQuestAssignmentsCommand{ColonyID: colonyID})
	require.NoError(t, err)

	byTask := make(map[string]types.AssignmentView, len(resp.Created))
	for _, a := range resp.Created {
		byTask[a.TaskID] = a
	}
	return byTask
}

func listSettlers(t *testing.T, ctx context.Context, app *bootstrap.App, colonyID string) map[string]settlerTypes.SettlerView {
	t.Helper()
	resp, err := helpers.Send[*settlerTypes.ListSettlersResponse](ctx, app, &settlerTypes.ListSettlersQuery{ColonyID: colonyID})
	require.NoError(t, err)

	byID := make(map[string]settlerTypes.SettlerView, len(resp.Settlers))
	for _, s := range resp.Settlers {
		byID[s.ID] = s
	}
	return byID
}

func TestSyncQuests_IsIdempotent(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, _ := helpers.FoundColony(t, ctx, app, "user-1")

	// Act
	first := syncQuests(t, ctx, app, colonyID)
	second := syncQuests(t, ctx, app, colonyID)

	// Assert
	assert.Len(t, first, 2, "only quest templates are instantiated")
	assert.Contains(t, first, "scout_ruins")
	assert.Contains(t, first, "salvage_ruins")
	assert.Empty(t, second)
}

func TestStartAssignment_MovesAssignmentAndSettler(t *testing.T) {
	// Arrange
	app, clock := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")
	quests := syncQuests(t, ctx, app, colonyID)

	// Act
	resp, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
		AssignmentID: quests["scout_ruins"].ID,
		SettlerID:    settlerID,
	})

	// Assert
	require.NoError(t, err)
	started := resp.Assignment
	assert.Equal(t, string(assignment.StateInProgress), started.State)
	assert.Equal(t, settlerID, started.SettlerID)
	require.NotNil(t, started.StartedAt)
	require.NotNil(t, started.CompletedAt)
	assert.True(t, started.StartedAt.Equal(clock.Now()))
	require.NotNil(t, started.Adjustments)
	assert.Equal(t, started.Adjustments.AdjustedDuration, started.CompletedAt.Sub(*started.StartedAt).Milliseconds())

	settlers := listSettlers(t, ctx, app, colonyID)
	assert.Equal(t, "questing", settlers[settlerID].Status)
}

func TestStartAssignment_Rejections(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")
	otherColonyID, otherSettlerID := helpers.FoundColony(t, ctx, app, "user-2")
	quests := syncQuests(t, ctx, app, colonyID)
	syncQuests(t, ctx, app, otherColonyID)

	t.Run("unknown assignment", func(t *testing.T) {
		_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
			AssignmentID: "assignment-missing",
			SettlerID:    settlerID,
		})
		assert.ErrorIs(t, err, shared.ErrAssignmentNotFound)
	})

	t.Run("settler of another colony", func(t *testing.T) {
		_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
			AssignmentID: quests["scout_ruins"].ID,
			SettlerID:    otherSettlerID,
		})
		assert.ErrorIs(t, err, shared.ErrSettlerNotInColony)
	})

	t.Run("dependency not unlocked", func(t *testing.T) {
		_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
			AssignmentID: quests["salvage_ruins"].ID,
			SettlerID:    settlerID,
		})
		assert.ErrorIs(t, err, shared.ErrDependencyUnmet)
	})

	t.Run("missing ids are validation errors", func(t *testing.T) {
		_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{SettlerID: settlerID})
		assert.True(t, shared.IsValidationError(err))
	})

	t.Run("already started", func(t *testing.T) {
		_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
			AssignmentID: quests["scout_ruins"].ID,
			SettlerID:    settlerID,
		})
		require.NoError(t, err)

		_, err = helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
			AssignmentID: quests["scout_ruins"].ID,
			SettlerID:    settlerID,
		})
		assert.ErrorIs(t, err, shared.ErrInvalidAssignmentState)
	})

	t.Run("busy settler", func(t *testing.T) {
		_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartRestingCommand{
			ColonyID:  colonyID,
			SettlerID: settlerID,
		})
		assert.ErrorIs(t, err, shared.ErrSettlerNotIdle)
	})
}

func TestStartAssignment_CompletesAndUnlocksDependents(t *testing.T) {
	// Arrange
	app, clock := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")
	quests := syncQuests(t, ctx, app, colonyID)

	_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
		AssignmentID: quests["scout_ruins"].ID,
		SettlerID:    settlerID,
	})
	require.NoError(t, err)

	// Act
	clock.Advance(2 * time.Hour)
	resp, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartAssignmentCommand{
		AssignmentID: quests["salvage_ruins"].ID,
		SettlerID:    settlerID,
	})

	// Assert
	require.NoError(t, err, "due resolution frees the settler and unlocks the dependent quest")
	assert.Equal(t, string(assignment.StateInProgress), resp.Assignment.State)

	list, err := helpers.Send[*types.ListAssignmentsResponse](ctx, app, &types.ListAssignmentsQuery{
		ColonyID: colonyID,
		State:    string(assignment.StateCompleted),
	})
	require.NoError(t, err)
	require.Len(t, list.Assignments, 1)
	assert.Equal(t, "scout_ruins", list.Assignments[0].TaskID)
}

func TestStartExploration_InsufficientEnergy(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestAppWith(t, func(cfg *config.Config) {
		cfg.Game.StartingEnergy = 1
	})
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")
	overview := helpers.Overview(t, ctx, app, colonyID)
	home := overview.Colony.Placement.Location

	// Act
	_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartExplorationCommand{
		ColonyID:  colonyID,
		SettlerID: settlerID,
		X:         home.X + 1,
		Y:         home.Y,
	})

	// Assert
	var energyErr *shared.InsufficientEnergyError
	require.ErrorAs(t, err, &energyErr)
	assert.ErrorIs(t, err, shared.ErrInsufficientEnergy)
	assert.Greater(t, energyErr.Required, energyErr.Available)

	settlers := listSettlers(t, ctx, app, colonyID)
	assert.Equal(t, "idle", settlers[settlerID].Status)
}

func TestStartExploration_RevealsTileOnCompletion(t *testing.T) {
	// Arrange
	app, clock := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")
	home := helpers.Overview(t, ctx, app, colonyID).Colony.Placement.Location
	target := shared.NewLocation(home.X+2, home.Y-1)

	// Act
	resp, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartExplorationCommand{
		ColonyID:  colonyID,
		SettlerID: settlerID,
		X:         target.X,
		Y:         target.Y,
	})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, string(assignment.TypeExploration), resp.Assignment.Type)
	assert.Equal(t, time.Hour.Milliseconds(), resp.Assignment.DurationMs, "two legs of half an hour")
	require.NotNil(t, resp.Assignment.Location)
	assert.Equal(t, target, *resp.Assignment.Location)

	clock.Advance(12 * time.Hour)
	_, err = helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartExplorationCommand{
		ColonyID:  colonyID,
		SettlerID: settlerID,
		X:         target.X,
		Y:         target.Y,
	})
	assert.ErrorIs(t, err, shared.ErrTileAlreadyExplored)
}

func TestStartCrafting_ConsumesInputs(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")

	// Act
	_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartCraftingCommand{
		ColonyID:  colonyID,
		SettlerID: settlerID,
		RecipeID:  "plank",
	})

	// Assert
	assert.ErrorIs(t, err, shared.ErrInsufficientMaterials)

	settlers := listSettlers(t, ctx, app, colonyID)
	assert.Equal(t, "idle", settlers[settlerID].Status)
}

func TestStartCrafting_UnknownRecipeSuggestsNearest(t *testing.T) {
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")

	_, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartCraftingCommand{
		ColonyID:  colonyID,
		SettlerID: settlerID,
		RecipeID:  "plonk",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "plank")
}

func TestInformAssignment_OnlyAfterCompletion(t *testing.T) {
	// Arrange
	app, clock := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, settlerID := helpers.FoundColony(t, ctx, app, "user-1")

	rest, err := helpers.Send[*types.StartAssignmentResponse](ctx, app, &types.StartRestingCommand{
		ColonyID:  colonyID,
		SettlerID: settlerID,
		Duration:  time.Hour,
	})
	require.NoError(t, err)

	// Act
	_, earlyErr := helpers.Send[*types.InformAssignmentResponse](ctx, app, &types.InformAssignmentCommand{AssignmentID: rest.Assignment.ID})
	clock.Advance(4 * time.Hour)
	informed, err := helpers.Send[*types.InformAssignmentResponse](ctx, app, &types.InformAssignmentCommand{AssignmentID: rest.Assignment.ID})

	// Assert
	assert.ErrorIs(t, earlyErr, shared.ErrInvalidAssignmentState)
	require.NoError(t, err)
	assert.Equal(t, string(assignment.StateInformed), informed.State)
}
