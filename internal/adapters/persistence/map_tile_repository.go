package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/world"
)

// GormMapTileRepository implements world.Repository using GORM
type GormMapTileRepository struct {
	db *gorm.DB
}

// NewGormMapTileRepository creates a new GORM map tile repository
func NewGormMapTileRepository(db *gorm.DB) *GormMapTileRepository {
	return &GormMapTileRepository{db: db}
}

// Add inserts a tile
func (r *GormMapTileRepository) Add(ctx context.Context, tile *world.Tile) error {
	result := conn(ctx, r.db).Create(r.tileToModel(tile))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.ErrDuplicateIndex, "tile %s already mapped", tile.Location())
		}
		return fmt.Errorf("failed to add tile: %w", result.Error)
	}
	return nil
}

// FindByLocation returns nil, nil when the colony has no tile there
func (r *GormMapTileRepository) FindByLocation(ctx context.Context, colonyID string, loc shared.Location) (*world.Tile, error) {
	var models []MapTileModel
	result := conn(ctx, r.db).Where("colony_id = ? AND x = ? AND y = ?", colonyID, loc.X, loc.Y).Limit(1).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find tile: %w", result.Error)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return r.modelToTile(&models[0]), nil
}

// FindByColony lists a colony's tiles row by row
func (r *GormMapTileRepository) FindByColony(ctx context.Context, colonyID string) ([]*world.Tile, error) {
	var models []MapTileModel
	result := conn(ctx, r.db).Where("colony_id = ?", colonyID).Order("y ASC, x ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list tiles: %w", result.Error)
	}
	tiles := make([]*world.Tile, 0, len(models))
	for i := range models {
		tiles = append(tiles, r.modelToTile(&models[i]))
	}
	return tiles, nil
}

// Save updates a tile
func (r *GormMapTileRepository) Save(ctx context.Context, tile *world.Tile) error {
	if err := conn(ctx, r.db).Save(r.tileToModel(tile)).Error; err != nil {
		return fmt.Errorf("failed to save tile: %w", err)
	}
	return nil
}

func (r *GormMapTileRepository) tileToModel(tile *world.Tile) *MapTileModel {
	d := tile.ToData()
	return &MapTileModel{
		ID:        d.ID,
		ColonyID:  d.ColonyID,
		X:         d.Location.X,
		Y:         d.Location.Y,
		Terrain:   d.Terrain,
		Explored:  d.Explored,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *GormMapTileRepository) modelToTile(model *MapTileModel) *world.Tile {
	return world.Reconstruct(world.Data{
		ID:        model.ID,
		ColonyID:  model.ColonyID,
		Location:  shared.NewLocation(model.X, model.Y),
		Terrain:   model.Terrain,
		Explored:  model.Explored,
		CreatedAt: model.CreatedAt,
	})
}
