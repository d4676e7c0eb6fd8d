package services

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/world"
	"github.com/andrescamacho/colony-go/pkg/utils"
)

// Surveyor maintains a colony's explored map. Tiles are created lazily around
// explored cells with terrain from the noise generator.
type Surveyor struct {
	tiles   world.Repository
	terrain *world.TerrainGenerator
}

func NewSurveyor(tiles world.Repository, terrain *world.TerrainGenerator) *Surveyor {
	return &Surveyor{tiles: tiles, terrain: terrain}
}

// Explore marks the tile at loc explored, creating it if missing, and makes
// sure its four neighbours exist. Returns the number of tiles created.
func (s *Surveyor) Explore(ctx context.Context, colonyID string, loc shared.Location, now time.Time) (int, error) {
	created := 0

	tile, err := s.tiles.FindByLocation(ctx, colonyID, loc)
	if err != nil {
		return 0, fmt.Errorf("failed to load tile %s: %w", loc, err)
	}
	if tile == nil {
		if _, err := s.addTile(ctx, colonyID, loc, true, now); err != nil {
			return 0, err
		}
		created++
	} else if tile.Explore() {
		if err := s.tiles.Save(ctx, tile); err != nil {
			return 0, fmt.Errorf("failed to save tile %s: %w", loc, err)
		}
	}

	for _, n := range loc.Neighbors() {
		existing, err := s.tiles.FindByLocation(ctx, colonyID, n)
		if err != nil {
			return created, fmt.Errorf("failed to load tile %s: %w", n, err)
		}
		if existing != nil {
			continue
		}
		if _, err := s.addTile(ctx, colonyID, n, false, now); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// Tile returns the tile at loc or shared.ErrTileNotFound
func (s *Surveyor) Tile(ctx context.Context, colonyID string, loc shared.Location) (*world.Tile, error) {
	tile, err := s.tiles.FindByLocation(ctx, colonyID, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to load tile %s: %w", loc, err)
	}
	if tile == nil {
		return nil, shared.NewDomainError(shared.ErrTileNotFound, "no tile at %s", loc)
	}
	return tile, nil
}

func (s *Surveyor) addTile(ctx context.Context, colonyID string, loc shared.Location, explored bool, now time.Time) (*world.Tile, error) {
	tile, err := world.NewTile(utils.GenerateID("tile"), colonyID, loc, s.terrain.TerrainAt(loc), explored, now)
	if err != nil {
		return nil, err
	}
	if err := s.tiles.Add(ctx, tile); err != nil {
		return nil, fmt.Errorf("failed to add tile %s: %w", loc, err)
	}
	return tile, nil
}
