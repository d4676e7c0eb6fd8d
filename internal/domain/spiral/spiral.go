package spiral

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Ring segment directions, in traversal order. A ring starts one cell below
// its top-right corner and walks clockwise back to that corner.
const (
	DirectionDownUpper = iota
	DirectionDownLower
	DirectionLeft
	DirectionUp
	DirectionRight
)

// Position is a decoded spiral index
type Position struct {
	Location        shared.Location
	Layer           int
	PositionInLayer int
	Direction       int
	Index           int
}

// CounterRepository hands out per-server spiral indexes
type CounterRepository interface {
	// NextIndex atomically increments the server's counter and returns the
	// value it held before the increment
	NextIndex(ctx context.Context, serverID string) (int, error)
}

// LocationFromIndex maps index*stepMultiplier onto the expanding square ring
// around the origin. Layer L holds 8L cells, so the cells up to and including
// layer L number 1 + 4L(L+1).
func LocationFromIndex(index, stepMultiplier int) (Position, error) {
	if index < 0 {
		return Position{}, fmt.Errorf("spiral index must be non-negative, got %d", index)
	}
	if stepMultiplier < 1 {
		return Position{}, fmt.Errorf("step multiplier must be at least 1, got %d", stepMultiplier)
	}

	target := index * stepMultiplier
	if target == 0 {
		return Position{Index: index}, nil
	}

	layer := 1
	for cellsThrough(layer) <= target {
		layer++
	}
	pos := target - cellsThrough(layer-1)

	loc, dir := decodeRing(layer, pos)
	return Position{
		Location:        loc,
		Layer:           layer,
		PositionInLayer: pos,
		Direction:       dir,
		Index:           index,
	}, nil
}

func cellsThrough(layer int) int {
	return 1 + 4*layer*(layer+1)
}

// decodeRing walks segments of lengths [L-1, L, 2L, 2L, 2L] from (L, -(L-1))
func decodeRing(layer, pos int) (shared.Location, int) {
	x, y := layer, -(layer - 1)
	segments := []struct{ length, dx, dy int }{
		{layer - 1, 0, 1},
		{layer, 0, 1},
		{2 * layer, -1, 0},
		{2 * layer, 0, -1},
		{2 * layer, 1, 0},
	}

	// pos 0 is the start cell itself; every later cell is one step along a segment
	remaining := pos
	for dir, seg := range segments {
		if remaining <= seg.length {
			return shared.NewLocation(x+seg.dx*remaining, y+seg.dy*remaining), dir
		}
		x += seg.dx * seg.length
		y += seg.dy * seg.length
		remaining -= seg.length
	}
	panic(fmt.Sprintf("spiral position %d out of range for layer %d", pos, layer))
}
