package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/adapters/catalog"
	domain "github.com/andrescamacho/colony-go/internal/domain/catalog"
)

func TestDefault_LoadsBuiltInCatalog(t *testing.T) {
	// Act
	tables, err := catalog.Default()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1", tables.Version())

	wood, err := tables.Item("wood")
	require.NoError(t, err)
	assert.True(t, wood.Stackable)

	knife, err := tables.Item("knife")
	require.NoError(t, err)
	assert.False(t, knife.Stackable)

	assert.NotEmpty(t, tables.Quests())
	assert.Equal(t, -8.0, tables.EnergyDeltaPerHour("exploring"))

	scout, err := tables.Task("scout_ruins")
	require.NoError(t, err)
	require.Len(t, scout.SettlerDiscovery, 2)
	assert.Equal(t, 2, scout.SettlerDiscovery[0].MaxSettlers, "brackets are sorted by size")
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing items",
			doc:  "version: \"1\"\nstatuses: []\n",
		},
		{
			name: "negative weight",
			doc: `version: "1"
statuses: []
items:
  - { id: wood, name: Wood, type: material, weight: -1 }
`,
		},
		{
			name: "unknown task type",
			doc: `version: "1"
statuses: []
items:
  - { id: wood, name: Wood, type: material, weight: 1 }
tasks:
  - { id: nap, name: Nap, type: napping, duration_ms: 10 }
`,
		},
		{
			name: "unexpected field",
			doc: `version: "1"
statuses: []
items:
  - { id: wood, name: Wood, type: material, weight: 1, colour: brown }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			_, err := catalog.Load([]byte(tt.doc))

			// Assert
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema")
		})
	}
}

func TestLoad_UnknownRewardItemSuggestsClosestID(t *testing.T) {
	// Arrange
	doc := `version: "1"
statuses: []
items:
  - { id: wood, name: Wood, type: material, weight: 1 }
tasks:
  - { id: chop, name: Chop, type: quest, duration_ms: 1000, rewards: { wod: 2 } }
`

	// Act
	_, err := catalog.Load([]byte(doc))

	// Assert
	var unknown *domain.UnknownIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "wod", unknown.ID)
	assert.Equal(t, "wood", unknown.Suggestion)
}

func TestLoadFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `version: "test"
statuses:
  - { id: idle, energy_delta_per_hour: 2 }
items:
  - { id: wood, name: Wood, type: material, weight: 1, stackable: true }
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	// Act
	tables, err := catalog.LoadFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "test", tables.Version())
	assert.Equal(t, 2.0, tables.EnergyDeltaPerHour("idle"))
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
