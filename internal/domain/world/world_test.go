package world_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/world"
	"github.com/andrescamacho/colony-go/test/helpers"
)

func TestTerrainGenerator_IsDeterministic(t *testing.T) {
	cat := helpers.NewTestCatalog(t)
	a := world.NewTerrainGenerator(99, cat)
	b := world.NewTerrainGenerator(99, cat)

	known := map[string]bool{"water": true, "plains": true, "forest": true, "mountain": true}
	for x := -10; x <= 10; x++ {
		for y := -10; y <= 10; y++ {
			loc := shared.NewLocation(x, y)
			terrain := a.TerrainAt(loc)
			assert.Equal(t, terrain, b.TerrainAt(loc))
			assert.True(t, known[terrain], "unexpected terrain %q", terrain)

			e := a.Elevation(loc)
			assert.GreaterOrEqual(t, e, 0.0)
			assert.LessOrEqual(t, e, 1.0)
		}
	}
}

func TestTile_Explore(t *testing.T) {
	tile, err := world.NewTile("t-1", "c-1", shared.NewLocation(2, 3), "plains", false, time.Now())
	require.NoError(t, err)

	assert.True(t, tile.Explore())
	assert.False(t, tile.Explore())
	assert.True(t, tile.IsExplored())
}
