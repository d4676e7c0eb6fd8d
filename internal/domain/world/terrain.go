package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

const (
	noiseOctaves     = 4
	noiseFrequency   = 0.08
	noisePersistence = 0.5

	// TerrainUnknown is used when the catalog defines no terrains
	TerrainUnknown = "unknown"
)

// TerrainGenerator assigns terrain to map cells from seeded elevation noise,
// so the same seed always yields the same map
type TerrainGenerator struct {
	noise    opensimplex.Noise
	terrains []catalog.TerrainDef
}

// NewTerrainGenerator builds a generator over terrains sorted by ascending
// MaxElevation
func NewTerrainGenerator(seed int64, terrains catalog.Terrains) *TerrainGenerator {
	return &TerrainGenerator{
		noise:    opensimplex.NewNormalized(seed),
		terrains: terrains.Terrains(),
	}
}

// Elevation samples layered noise at a cell, in [0, 1)
func (g *TerrainGenerator) Elevation(loc shared.Location) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	frequency := noiseFrequency
	for i := 0; i < noiseOctaves; i++ {
		total += g.noise.Eval2(float64(loc.X)*frequency, float64(loc.Y)*frequency) * amplitude
		maxVal += amplitude
		amplitude *= noisePersistence
		frequency *= 2
	}
	return total / maxVal
}

// TerrainAt picks the first terrain whose MaxElevation covers the cell
func (g *TerrainGenerator) TerrainAt(loc shared.Location) string {
	if len(g.terrains) == 0 {
		return TerrainUnknown
	}
	e := g.Elevation(loc)
	for _, t := range g.terrains {
		if e <= t.MaxElevation {
			return t.ID
		}
	}
	return g.terrains[len(g.terrains)-1].ID
}
