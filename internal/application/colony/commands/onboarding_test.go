package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/application/colony/commands"
	"github.com/andrescamacho/colony-go/internal/application/colony/types"
	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/test/helpers"
)

func TestOnboarding_CandidatesAreStableUntilChosen(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	created, err := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-1"})
	require.NoError(t, err)
	colonyID := created.Colony.ID

	// Act
	first, err := helpers.Send[*types.GenerateOnboardingSettlersResponse](ctx, app, &types.GenerateOnboardingSettlersCommand{ColonyID: colonyID})
	require.NoError(t, err)
	again, err := helpers.Send[*types.GenerateOnboardingSettlersResponse](ctx, app, &types.GenerateOnboardingSettlersCommand{ColonyID: colonyID})
	require.NoError(t, err)

	// Assert
	require.Len(t, first.Candidates, commands.OnboardingCandidates)
	assert.ElementsMatch(t, candidateIDs(first.Candidates), candidateIDs(again.Candidates))
	for _, c := range first.Candidates {
		assert.Equal(t, "candidate", c.Status)
	}

	listed, err := helpers.Send[*settlerTypes.ListSettlersResponse](ctx, app, &settlerTypes.ListSettlersQuery{ColonyID: colonyID})
	require.NoError(t, err)
	assert.Empty(t, listed.Settlers, "candidates are hidden from the settler list")
}

func TestOnboarding_ChooseKeepsOneAndDiscardsRest(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	created, err := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{UserID: "user-1", ServerID: "srv-1"})
	require.NoError(t, err)
	colonyID := created.Colony.ID

	generated, err := helpers.Send[*types.GenerateOnboardingSettlersResponse](ctx, app, &types.GenerateOnboardingSettlersCommand{ColonyID: colonyID})
	require.NoError(t, err)
	pick := generated.Candidates[1]

	// Act
	chosen, err := helpers.Send[*types.ChooseOnboardingSettlerResponse](ctx, app, &types.ChooseOnboardingSettlerCommand{
		ColonyID:  colonyID,
		SettlerID: pick.ID,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, pick.ID, chosen.Settler.ID)
	assert.Equal(t, "idle", chosen.Settler.Status)
	assert.Len(t, chosen.Discarded, commands.OnboardingCandidates-1)

	overview := helpers.Overview(t, ctx, app, colonyID)
	assert.Equal(t, []string{pick.ID}, overview.Colony.SettlerIDs)
	require.Len(t, overview.Settlers, 1)
	last := overview.Colony.Logs[len(overview.Colony.Logs)-1]
	assert.Equal(t, colony.LogSettlerJoined, last.Type)

	_, err = helpers.Send[*types.GenerateOnboardingSettlersResponse](ctx, app, &types.GenerateOnboardingSettlersCommand{ColonyID: colonyID})
	assert.ErrorIs(t, err, shared.ErrOnboardingComplete)
}

func TestOnboarding_ChooseRejectsForeignSettler(t *testing.T) {
	// Arrange
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	_, foreignSettlerID := helpers.FoundColony(t, ctx, app, "user-1")
	created, err := helpers.Send[*types.CreateColonyResponse](ctx, app, &types.CreateColonyCommand{UserID: "user-2", ServerID: "srv-1"})
	require.NoError(t, err)

	// Act
	_, err = helpers.Send[*types.ChooseOnboardingSettlerResponse](ctx, app, &types.ChooseOnboardingSettlerCommand{
		ColonyID:  created.Colony.ID,
		SettlerID: foreignSettlerID,
	})

	// Assert
	assert.ErrorIs(t, err, shared.ErrSettlerNotInColony)
}

func TestDropColonyItems_Validation(t *testing.T) {
	app, _ := helpers.NewTestApp(t)
	ctx := context.Background()
	colonyID, _ := helpers.FoundColony(t, ctx, app, "user-1")

	_, err := helpers.Send[*types.DropColonyItemsResponse](ctx, app, &types.DropColonyItemsCommand{ColonyID: colonyID, ItemID: "wood"})
	assert.True(t, shared.IsValidationError(err))

	_, err = helpers.Send[*types.DropColonyItemsResponse](ctx, app, &types.DropColonyItemsCommand{ColonyID: colonyID, ItemID: "wood", Quantity: 1})
	assert.ErrorIs(t, err, shared.ErrItemNotInInventory)
}

func candidateIDs(views []settlerTypes.SettlerView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}
