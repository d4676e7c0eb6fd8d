package types

import (
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/settler"
)

// SettlerView is a read-only snapshot of a settler
type SettlerView struct {
	ID                string
	ColonyID          string
	Name              string
	Status            string
	Energy            float64
	EnergyLastUpdated time.Time
	Stats             settler.Stats
	Skills            map[string]int
	Traits            []settler.Trait
	Carry             []settler.CarryItem
	MaxCarrySlots     int
	CarryingCapacity  float64
	CreatedAt         time.Time
}

// NewSettlerView snapshots a settler
func NewSettlerView(s *settler.Settler) SettlerView {
	return SettlerView{
		ID:                s.ID(),
		ColonyID:          s.ColonyID(),
		Name:              s.Name(),
		Status:            string(s.Status()),
		Energy:            s.Energy(),
		EnergyLastUpdated: s.EnergyLastUpdated(),
		Stats:             s.Stats(),
		Skills:            s.Skills(),
		Traits:            s.Traits(),
		Carry:             s.Carry(),
		MaxCarrySlots:     s.MaxCarrySlots(),
		CarryingCapacity:  s.CarryingCapacity(),
		CreatedAt:         s.CreatedAt(),
	}
}

// DropSettlerItemsCommand discards carried items
type DropSettlerItemsCommand struct {
	SettlerID string
	ItemID    string
	Quantity  int
}

// DropSettlerItemsResponse reports how many units were dropped
type DropSettlerItemsResponse struct {
	Dropped int
	Settler SettlerView
}

// ListSettlersQuery lists a colony's settlers with energy settled to now
type ListSettlersQuery struct {
	ColonyID          string
	IncludeCandidates bool
}

// ListSettlersResponse holds the settlers
type ListSettlersResponse struct {
	Settlers []SettlerView
}
