package settler

import (
	"fmt"
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Status is a settler's current activity
type Status string

const (
	StatusIdle      Status = "idle"
	StatusWorking   Status = "working"
	StatusResting   Status = "resting"
	StatusExploring Status = "exploring"
	StatusCrafting  Status = "crafting"
	StatusQuesting  Status = "questing"

	// StatusCandidate marks an onboarding candidate that has not been chosen yet
	StatusCandidate Status = "candidate"
)

const (
	MinEnergy = 0.0
	MaxEnergy = 100.0

	MinAttribute = 0
	MaxAttribute = 20

	DefaultMaxCarrySlots = 5
)

// Stats are the four base attributes, each 0-20
type Stats struct {
	Strength     int
	Speed        int
	Intelligence int
	Resilience   int
}

// Trait is a settler's copy of a catalog trait
type Trait struct {
	ID     string
	Name   string
	Effect catalog.TraitEffect
}

// CarryItem is one carry slot
type CarryItem struct {
	ItemID   string
	Quantity int
}

// Settler is a colony member.
//
// Invariants:
//   - energy stays within [MinEnergy, MaxEnergy]
//   - len(carry) <= maxCarrySlots
type Settler struct {
	id                string
	colonyID          string
	name              string
	stats             Stats
	skills            map[string]int
	traits            []Trait
	status            Status
	energy            float64
	energyLastUpdated time.Time
	createdAt         time.Time
	carry             []CarryItem
	maxCarrySlots     int
}

// NewSettler creates an idle settler with the given attributes
func NewSettler(id, colonyID, name string, stats Stats, skills map[string]int, traits []Trait, energy float64, maxCarrySlots int, now time.Time) (*Settler, error) {
	if id == "" {
		return nil, fmt.Errorf("settler id cannot be empty")
	}
	if colonyID == "" {
		return nil, fmt.Errorf("colony id cannot be empty")
	}
	if maxCarrySlots <= 0 {
		maxCarrySlots = DefaultMaxCarrySlots
	}
	if skills == nil {
		skills = make(map[string]int)
	}

	return &Settler{
		id:                id,
		colonyID:          colonyID,
		name:              name,
		stats:             clampStats(stats),
		skills:            clampSkills(skills),
		traits:            traits,
		status:            StatusIdle,
		energy:            clampEnergy(energy),
		energyLastUpdated: now,
		createdAt:         now,
		maxCarrySlots:     maxCarrySlots,
	}, nil
}

// Data is the persisted shape of a settler
type Data struct {
	ID                string
	ColonyID          string
	Name              string
	Stats             Stats
	Skills            map[string]int
	Traits            []Trait
	Status            Status
	Energy            float64
	EnergyLastUpdated time.Time
	CreatedAt         time.Time
	Carry             []CarryItem
	MaxCarrySlots     int
}

// Reconstruct rebuilds a settler from storage
func Reconstruct(d Data) *Settler {
	skills := d.Skills
	if skills == nil {
		skills = make(map[string]int)
	}
	return &Settler{
		id:                d.ID,
		colonyID:          d.ColonyID,
		name:              d.Name,
		stats:             d.Stats,
		skills:            skills,
		traits:            d.Traits,
		status:            d.Status,
		energy:            clampEnergy(d.Energy),
		energyLastUpdated: d.EnergyLastUpdated,
		createdAt:         d.CreatedAt,
		carry:             d.Carry,
		maxCarrySlots:     d.MaxCarrySlots,
	}
}

// ToData returns the persisted shape
func (s *Settler) ToData() Data {
	return Data{
		ID:                s.id,
		ColonyID:          s.colonyID,
		Name:              s.name,
		Stats:             s.stats,
		Skills:            s.skills,
		Traits:            s.traits,
		Status:            s.status,
		Energy:            s.energy,
		EnergyLastUpdated: s.energyLastUpdated,
		CreatedAt:         s.createdAt,
		Carry:             s.Carry(),
		MaxCarrySlots:     s.maxCarrySlots,
	}
}

func (s *Settler) ID() string { return s.id }
func (s *Settler) ColonyID() string { return s.colonyID }
func (s *Settler) Name() string { return s.name }
func (s *Settler) Stats() Stats { return s.stats }
func (s *Settler) Traits() []Trait { return s.traits }
func (s *Settler) Status() Status { return s.status }
func (s *Settler) Energy() float64 { return s.energy }
func (s *Settler) EnergyLastUpdated() time.Time { return s.energyLastUpdated }
func (s *Settler) CreatedAt() time.Time { return s.createdAt }
func (s *Settler) MaxCarrySlots() int { return s.maxCarrySlots }

// Skill returns a skill level, 0 when the settler never trained it
func (s *Settler) Skill(name string) int { return s.skills[name] }

// Skills returns a copy of the skill map
func (s *Settler) Skills() map[string]int {
	out := make(map[string]int, len(s.skills))
	for k, v := range s.skills {
		out[k] = v
	}
	return out
}

// Carry returns a copy of the carry slots
func (s *Settler) Carry() []CarryItem {
	return append([]CarryItem(nil), s.carry...)
}

func (s *Settler) IsIdle() bool { return s.status == StatusIdle }
func (s *Settler) IsCandidate() bool { return s.status == StatusCandidate }

// MarkCandidate flags a freshly generated settler as an onboarding candidate
func (s *Settler) MarkCandidate() {
	s.status = StatusCandidate
}

// Activate turns a chosen onboarding candidate into an idle colony member.
// Energy starts accruing from now.
func (s *Settler) Activate(now time.Time) error {
	if s.status != StatusCandidate {
		return shared.NewDomainError(shared.ErrNotCandidate, "%s is %s", s.id, s.status)
	}
	s.status = StatusIdle
	s.energyLastUpdated = now
	return nil
}

// Carried returns how many units of an item the settler holds
func (s *Settler) Carried(itemID string) int {
	total := 0
	for _, c := range s.carry {
		if c.ItemID == itemID {
			total += c.Quantity
		}
	}
	return total
}

func clampEnergy(e float64) float64 {
	if e < MinEnergy {
		return MinEnergy
	}
	if e > MaxEnergy {
		return MaxEnergy
	}
	return e
}

func clampAttribute(v int) int {
	if v < MinAttribute {
		return MinAttribute
	}
	if v > MaxAttribute {
		return MaxAttribute
	}
	return v
}

func clampStats(s Stats) Stats {
	return Stats{
		Strength:     clampAttribute(s.Strength),
		Speed:        clampAttribute(s.Speed),
		Intelligence: clampAttribute(s.Intelligence),
		Resilience:   clampAttribute(s.Resilience),
	}
}

func clampSkills(skills map[string]int) map[string]int {
	out := make(map[string]int, len(skills))
	for k, v := range skills {
		out[k] = clampAttribute(v)
	}
	return out
}
