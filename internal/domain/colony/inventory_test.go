package colony_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/test/helpers"
)

func TestAddRewards_NewStackPullsCatalogFields(t *testing.T) {
	cat := helpers.NewTestCatalog(t)
	inv := colony.NewInventory("c-1")

	result, err := inv.AddRewards(map[string]int{"knife": 1}, 5, cat)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"knife": 1}, result.Added)
	items := inv.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Knife", items[0].Name)
	assert.Equal(t, "tool", items[0].Type)
	assert.Equal(t, 50, items[0].Properties["durability"])
}

func TestAddRewards_ExistingStacksIgnoreCap(t *testing.T) {
	cat := helpers.NewTestCatalog(t)
	inv := colony.ReconstructInventory("c-1", []colony.Item{
		{ItemID: "wood", Type: "material", Quantity: 3},
		{ItemID: "stone", Type: "material", Quantity: 1},
	})

	result, err := inv.AddRewards(map[string]int{"wood": 10, "berries": 4, "scrap": 0}, 2, cat)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"wood": 10}, result.Added)
	assert.Equal(t, map[string]int{"berries": 4}, result.Remaining)
	assert.Equal(t, 13, inv.Quantity("wood"))
	assert.Equal(t, 2, inv.TypeCount())
}

func TestAddRewards_ConservesQuantitiesAndRespectsCap(t *testing.T) {
	cat := helpers.NewTestCatalog(t)
	ids := []string{"wood", "stone", "scrap", "plank", "berries", "knife"}
	rng := rand.New(rand.NewPCG(5, 5))

	for i := 0; i < 300; i++ {
		maxInventory := 1 + rng.IntN(4)
		inv := colony.NewInventory("c-1")
		rewards := map[string]int{}
		for _, id := range ids {
			if rng.IntN(2) == 0 {
				rewards[id] = 1 + rng.IntN(20)
			}
		}

		result, err := inv.AddRewards(rewards, maxInventory, cat)
		require.NoError(t, err)

		in, out := 0, 0
		for _, q := range rewards {
			in += q
		}
		for _, q := range result.Added {
			out += q
		}
		for _, q := range result.Remaining {
			out += q
		}
		assert.Equal(t, in, out)
		assert.LessOrEqual(t, inv.TypeCount(), maxInventory)
	}
}

func TestConsume_IsAllOrNothing(t *testing.T) {
	inv := colony.ReconstructInventory("c-1", []colony.Item{
		{ItemID: "wood", Quantity: 3},
		{ItemID: "stone", Quantity: 1},
	})

	err := inv.Consume(map[string]int{"wood": 2, "stone": 2})
	assert.ErrorIs(t, err, shared.ErrInsufficientMaterials)
	assert.Equal(t, 3, inv.Quantity("wood"))
	assert.Equal(t, 1, inv.Quantity("stone"))

	require.NoError(t, inv.Consume(map[string]int{"wood": 2, "stone": 1}))
	assert.Equal(t, 1, inv.Quantity("wood"))
	assert.False(t, inv.Has("stone"))
}

func TestInventoryDropItems(t *testing.T) {
	inv := colony.ReconstructInventory("c-1", []colony.Item{{ItemID: "wood", Quantity: 3}})

	dropped, err := inv.DropItems("wood", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	assert.Equal(t, 0, inv.TypeCount())

	_, err = inv.DropItems("wood", 1)
	assert.ErrorIs(t, err, shared.ErrItemNotInInventory)
}

func TestSummarize(t *testing.T) {
	inv := colony.ReconstructInventory("c-1", []colony.Item{
		{ItemID: "berries", Type: "food", Quantity: 12},
		{ItemID: "wood", Type: "material", Quantity: 7},
		{ItemID: "knife", Type: "tool", Quantity: 1},
	})

	s := inv.Summarize(2, 1.5)

	assert.Equal(t, 3, s.StackCount)
	assert.Equal(t, 12, s.FoodUnits)
	assert.InDelta(t, 4.0, s.DaysOfFood, 1e-9)
	assert.Equal(t, map[string]int{"wood": 7}, s.RawMaterials)
}
