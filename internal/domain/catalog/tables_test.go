package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
)

func testDefinitions() catalog.Definitions {
	return catalog.Definitions{
		Version: "t",
		Items: []catalog.ItemDef{
			{ID: "wood", Name: "Wood", Type: catalog.ItemTypeMaterial, Weight: 1, Stackable: true},
			{ID: "berries", Name: "Berries", Type: catalog.ItemTypeFood, Weight: 0.5, Stackable: true},
		},
		Traits: []catalog.TraitDef{
			{ID: "quick", Name: "Quick", Effect: catalog.TraitEffect{Target: "task", Key: "all", Modifier: "-20%"}},
			{ID: "brave", Name: "Brave", Effect: catalog.TraitEffect{Target: "task", Key: "exploration", Modifier: "-5%"}},
		},
		Statuses: []catalog.StatusDef{{ID: "idle", EnergyDeltaPerHour: 1}},
		Tasks: []catalog.TaskDef{
			{
				ID:         "forage",
				Name:       "Forage",
				Type:       "quest",
				DurationMs: 1000,
				Rewards:    map[string]int{"berries": 2},
				SettlerDiscovery: []catalog.DiscoveryBracket{
					{MaxSettlers: 10, Chance: 0.1},
					{MaxSettlers: 2, Chance: 0.5},
				},
			},
			{ID: "sweep", Name: "Sweep", Type: "cleaning", DurationMs: 1000},
		},
		Recipes: []catalog.RecipeDef{
			{ID: "bundle", Name: "Bundle", DurationMs: 1000, Inputs: map[string]int{"wood": 2}, Outputs: map[string]int{"wood": 1}},
		},
		Terrains: []catalog.TerrainDef{
			{ID: "hill", MaxElevation: 1},
			{ID: "lake", MaxElevation: 0.2},
		},
	}
}

func TestNewTables_IndexesDefinitions(t *testing.T) {
	// Act
	tables, err := catalog.NewTables(testDefinitions())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "t", tables.Version())

	quests := tables.Quests()
	require.Len(t, quests, 1)
	assert.Equal(t, "forage", quests[0].ID)
	assert.Equal(t, 2, quests[0].SettlerDiscovery[0].MaxSettlers)

	traits := tables.AllTraits()
	require.Len(t, traits, 2)
	assert.Equal(t, "brave", traits[0].ID)

	terrains := tables.Terrains()
	assert.Equal(t, "lake", terrains[0].ID)
	assert.Equal(t, "hill", terrains[1].ID)

	assert.Equal(t, 1.0, tables.EnergyDeltaPerHour("idle"))
	assert.Equal(t, 0.0, tables.EnergyDeltaPerHour("unknown"))
}

func TestNewTables_RejectsDuplicateIDs(t *testing.T) {
	// Arrange
	defs := testDefinitions()
	defs.Items = append(defs.Items, catalog.ItemDef{ID: "wood", Name: "More Wood"})

	// Act
	_, err := catalog.NewTables(defs)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate item id")
}

func TestNewTables_RejectsUnknownRecipeInput(t *testing.T) {
	// Arrange
	defs := testDefinitions()
	defs.Recipes[0].Inputs = map[string]int{"stone": 1}

	// Act
	_, err := catalog.NewTables(defs)

	// Assert
	var unknown *catalog.UnknownIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "item", unknown.Table)
	assert.Equal(t, "stone", unknown.ID)
}

func TestTables_UnknownLookupSuggestsClosestID(t *testing.T) {
	tables, err := catalog.NewTables(testDefinitions())
	require.NoError(t, err)

	tests := []struct {
		name       string
		lookup     func() error
		suggestion string
	}{
		{
			name: "item typo",
			lookup: func() error {
				_, err := tables.Item("woood")
				return err
			},
			suggestion: "wood",
		},
		{
			name: "task typo",
			lookup: func() error {
				_, err := tables.Task("forge")
				return err
			},
			suggestion: "forage",
		},
		{
			name: "nothing close",
			lookup: func() error {
				_, err := tables.Recipe("zzzzzzzz")
				return err
			},
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup()

			var unknown *catalog.UnknownIDError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.suggestion, unknown.Suggestion)
		})
	}
}
