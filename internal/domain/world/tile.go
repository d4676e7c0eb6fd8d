package world

import (
	"fmt"
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Tile is one cell of a colony's map
type Tile struct {
	id        string
	colonyID  string
	location  shared.Location
	terrain   string
	explored  bool
	createdAt time.Time
}

func NewTile(id, colonyID string, location shared.Location, terrain string, explored bool, now time.Time) (*Tile, error) {
	if id == "" {
		return nil, fmt.Errorf("tile id cannot be empty")
	}
	if colonyID == "" {
		return nil, fmt.Errorf("colony id cannot be empty")
	}
	return &Tile{
		id:        id,
		colonyID:  colonyID,
		location:  location,
		terrain:   terrain,
		explored:  explored,
		createdAt: now,
	}, nil
}

// Data is the persisted shape of a tile
type Data struct {
	ID        string
	ColonyID  string
	Location  shared.Location
	Terrain   string
	Explored  bool
	CreatedAt time.Time
}

func Reconstruct(d Data) *Tile {
	return &Tile{
		id:        d.ID,
		colonyID:  d.ColonyID,
		location:  d.Location,
		terrain:   d.Terrain,
		explored:  d.Explored,
		createdAt: d.CreatedAt,
	}
}

func (t *Tile) ToData() Data {
	return Data{
		ID:        t.id,
		ColonyID:  t.colonyID,
		Location:  t.location,
		Terrain:   t.terrain,
		Explored:  t.explored,
		CreatedAt: t.createdAt,
	}
}

func (t *Tile) ID() string { return t.id }
func (t *Tile) ColonyID() string { return t.colonyID }
func (t *Tile) Location() shared.Location { return t.location }
func (t *Tile) Terrain() string { return t.terrain }
func (t *Tile) IsExplored() bool { return t.explored }

// Explore marks the tile explored. Returns false if it already was.
func (t *Tile) Explore() bool {
	if t.explored {
		return false
	}
	t.explored = true
	return true
}
