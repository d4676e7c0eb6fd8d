package shared

import "fmt"

// Location is a cell on a server's 2D map
type Location struct {
	X int
	Y int
}

func NewLocation(x, y int) Location {
	return Location{X: x, Y: y}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Neighbors returns the four orthogonal neighbours: north, east, south, west
func (l Location) Neighbors() []Location {
	return []Location{
		{X: l.X, Y: l.Y - 1},
		{X: l.X + 1, Y: l.Y},
		{X: l.X, Y: l.Y + 1},
		{X: l.X - 1, Y: l.Y},
	}
}

// ChebyshevDistance is the ring distance used by spiral placement
func (l Location) ChebyshevDistance(other Location) int {
	dx := l.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := l.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
