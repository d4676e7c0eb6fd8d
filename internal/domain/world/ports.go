package world

import (
	"context"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Repository persists map tiles; (colony, location) is unique.
// FindByLocation returns nil, nil when no tile exists there.
type Repository interface {
	Add(ctx context.Context, tile *Tile) error
	FindByLocation(ctx context.Context, colonyID string, loc shared.Location) (*Tile, error)
	FindByColony(ctx context.Context, colonyID string) ([]*Tile, error)
	Save(ctx context.Context, tile *Tile) error
}
