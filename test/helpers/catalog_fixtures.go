package helpers

import (
	"testing"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
)

// TestDefinitions is a small but complete catalog used across tests
func TestDefinitions() catalog.Definitions {
	return catalog.Definitions{
		Version: "test-1",
		Items: []catalog.ItemDef{
			{ID: "wood", Name: "Wood", Icon: "wood.png", Type: catalog.ItemTypeMaterial, Weight: 1, Stackable: true},
			{ID: "stone", Name: "Stone", Icon: "stone.png", Type: catalog.ItemTypeMaterial, Weight: 3, Stackable: true},
			{ID: "scrap", Name: "Scrap Metal", Type: catalog.ItemTypeMaterial, Weight: 2, Stackable: true},
			{ID: "plank", Name: "Plank", Type: catalog.ItemTypeMaterial, Weight: 1, Stackable: true},
			{ID: "berries", Name: "Berries", Type: catalog.ItemTypeFood, Weight: 0.5, Stackable: true},
			{ID: "knife", Name: "Knife", Type: "tool", Weight: 2, Stackable: false,
				Properties: map[string]interface{}{"durability": 50}},
		},
		Traits: []catalog.TraitDef{
			{ID: "quick", Name: "Quick", Effect: catalog.TraitEffect{Target: "task", Key: "all", Modifier: "-20%"}},
			{ID: "scavenger", Name: "Scavenger", Effect: catalog.TraitEffect{Target: "task", Key: "exploration", Modifier: "+25% loot"}},
			{ID: "green_thumb", Name: "Green Thumb", Effect: catalog.TraitEffect{Target: "task", Key: "farming", Modifier: "+10% yield"}},
			{ID: "sluggish", Name: "Sluggish", Effect: catalog.TraitEffect{Target: "task", Key: "farming", Modifier: "+50%"}},
			{ID: "stubborn", Name: "Stubborn", Effect: catalog.TraitEffect{Target: "task", Key: "all", Modifier: "double"}},
		},
		Statuses: []catalog.StatusDef{
			{ID: "idle", EnergyDeltaPerHour: 1},
			{ID: "working", EnergyDeltaPerHour: -5},
			{ID: "exploring", EnergyDeltaPerHour: -8},
			{ID: "questing", EnergyDeltaPerHour: -6},
			{ID: "crafting", EnergyDeltaPerHour: -4},
			{ID: "resting", EnergyDeltaPerHour: 10},
		},
		Tasks: []catalog.TaskDef{
			{
				ID: "scout_ruins", Name: "Scout the ruins", Type: "quest", DurationMs: 600000,
				Rewards: map[string]int{"wood": 5, "scrap": 2},
				Unlocks: []string{"ruins_scouted"},
				SettlerDiscovery: []catalog.DiscoveryBracket{
					{MaxSettlers: 5, Chance: 0.2},
					{MaxSettlers: 2, Chance: 0.5},
				},
			},
			{
				ID: "salvage_ruins", Name: "Salvage the ruins", Type: "quest", DurationMs: 3600000,
				Rewards:      map[string]int{"scrap": 6},
				Dependencies: []string{"ruins_scouted"},
				Unlocks:      []string{"ruins_salvaged"},
			},
			{
				ID: "clear_rubble", Name: "Clear rubble", Type: "cleaning", DurationMs: 1800000,
				Rewards: map[string]int{"stone": 2},
			},
		},
		Recipes: []catalog.RecipeDef{
			{ID: "plank", Name: "Plank", DurationMs: 1800000,
				Inputs: map[string]int{"wood": 2}, Outputs: map[string]int{"plank": 1}},
		},
		Terrains: []catalog.TerrainDef{
			{ID: "mountain", Name: "Mountain", MaxElevation: 1.0, Loot: map[string]int{"stone": 3}},
			{ID: "water", Name: "Water", MaxElevation: 0.3},
			{ID: "plains", Name: "Plains", MaxElevation: 0.6, Loot: map[string]int{"berries": 4}},
			{ID: "forest", Name: "Forest", MaxElevation: 0.8, Loot: map[string]int{"wood": 4}},
		},
	}
}

// NewTestCatalog builds Tables from TestDefinitions
func NewTestCatalog(t *testing.T) *catalog.Tables {
	t.Helper()
	tables, err := catalog.NewTables(TestDefinitions())
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return tables
}
