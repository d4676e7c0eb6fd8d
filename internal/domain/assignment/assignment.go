package assignment

import (
	"fmt"
	"math"
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Type is the kind of activity an assignment represents
type Type string

const (
	TypeQuest       Type = "quest"
	TypeFarming     Type = "farming"
	TypeExploration Type = "exploration"
	TypeCrafting    Type = "crafting"
	TypeResting     Type = "resting"
	TypeCleaning    Type = "cleaning"
)

// State is the assignment lifecycle position.
//
//	available -> in-progress -> completed -> informed
//
// On-demand flows create an assignment and start it in the same unit of
// work, so it is never observed as available.
type State string

const (
	StateAvailable  State = "available"
	StateInProgress State = "in-progress"
	StateCompleted  State = "completed"
	StateInformed   State = "informed"
)

// Adjustments snapshots the settler-dependent scaling applied at start
type Adjustments struct {
	AdjustedDuration int64 // milliseconds
	EffectiveSpeed   float64
	LootMultiplier   float64
}

// Assignment is a timed task instance
type Assignment struct {
	id             string
	colonyID       string
	taskID         string
	name           string
	assignmentType Type
	state          State
	settlerID      string
	startedAt      *time.Time
	completedAt    *time.Time
	durationMs     int64
	plannedRewards map[string]int
	adjustments    *Adjustments
	settlerFoundID string
	location       *shared.Location
	dependencies   []string
	unlocks        []string
	createdAt      time.Time
}

// NewFromTemplate instantiates an available assignment from a task template
func NewFromTemplate(id, colonyID string, def catalog.TaskDef, now time.Time) (*Assignment, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("task template has no id")
	}
	a, err := New(id, colonyID, Type(def.Type), def.Name, def.DurationMs, def.Rewards, nil, now)
	if err != nil {
		return nil, err
	}
	a.taskID = def.ID
	a.dependencies = def.Dependencies
	a.unlocks = def.Unlocks
	return a, nil
}

// New creates an available assignment without a catalog template
func New(id, colonyID string, assignmentType Type, name string, durationMs int64, rewards map[string]int, location *shared.Location, now time.Time) (*Assignment, error) {
	if id == "" {
		return nil, fmt.Errorf("assignment id cannot be empty")
	}
	if colonyID == "" {
		return nil, fmt.Errorf("colony id cannot be empty")
	}
	if durationMs <= 0 {
		return nil, shared.NewValidationError("duration", "must be positive")
	}
	return &Assignment{
		id:             id,
		colonyID:       colonyID,
		name:           name,
		assignmentType: assignmentType,
		state:          StateAvailable,
		durationMs:     durationMs,
		plannedRewards: copyRewards(rewards),
		location:       location,
		createdAt:      now,
	}, nil
}

// Data is the persisted shape of an assignment
type Data struct {
	ID             string
	ColonyID       string
	TaskID         string
	Name           string
	Type           Type
	State          State
	SettlerID      string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	DurationMs     int64
	PlannedRewards map[string]int
	Adjustments    *Adjustments
	SettlerFoundID string
	Location       *shared.Location
	Dependencies   []string
	Unlocks        []string
	CreatedAt      time.Time
}

// Reconstruct rebuilds an assignment from storage
func Reconstruct(d Data) *Assignment {
	return &Assignment{
		id:             d.ID,
		colonyID:       d.ColonyID,
		taskID:         d.TaskID,
		name:           d.Name,
		assignmentType: d.Type,
		state:          d.State,
		settlerID:      d.SettlerID,
		startedAt:      d.StartedAt,
		completedAt:    d.CompletedAt,
		durationMs:     d.DurationMs,
		plannedRewards: d.PlannedRewards,
		adjustments:    d.Adjustments,
		settlerFoundID: d.SettlerFoundID,
		location:       d.Location,
		dependencies:   d.Dependencies,
		unlocks:        d.Unlocks,
		createdAt:      d.CreatedAt,
	}
}

func (a *Assignment) ToData() Data {
	return Data{
		ID:             a.id,
		ColonyID:       a.colonyID,
		TaskID:         a.taskID,
		Name:           a.name,
		Type:           a.assignmentType,
		State:          a.state,
		SettlerID:      a.settlerID,
		StartedAt:      a.startedAt,
		CompletedAt:    a.completedAt,
		DurationMs:     a.durationMs,
		PlannedRewards: copyRewards(a.plannedRewards),
		Adjustments:    a.adjustments,
		SettlerFoundID: a.settlerFoundID,
		Location:       a.location,
		Dependencies:   a.dependencies,
		Unlocks:        a.unlocks,
		CreatedAt:      a.createdAt,
	}
}

func (a *Assignment) ID() string { return a.id }
func (a *Assignment) ColonyID() string { return a.colonyID }
func (a *Assignment) TaskID() string { return a.taskID }
func (a *Assignment) Name() string { return a.name }
func (a *Assignment) Type() Type { return a.assignmentType }
func (a *Assignment) State() State { return a.state }
func (a *Assignment) SettlerID() string { return a.settlerID }
func (a *Assignment) StartedAt() *time.Time { return a.startedAt }
func (a *Assignment) CompletedAt() *time.Time { return a.completedAt }
func (a *Assignment) DurationMs() int64 { return a.durationMs }
func (a *Assignment) Adjustments() *Adjustments { return a.adjustments }
func (a *Assignment) SettlerFoundID() string { return a.settlerFoundID }
func (a *Assignment) Location() *shared.Location { return a.location }
func (a *Assignment) Dependencies() []string { return a.dependencies }
func (a *Assignment) CreatedAt() time.Time { return a.createdAt }
func (a *Assignment) PlannedRewards() map[string]int { return copyRewards(a.plannedRewards) }

// HasRewards reports whether completing the assignment yields items
func (a *Assignment) HasRewards() bool {
	for _, q := range a.plannedRewards {
		if q > 0 {
			return true
		}
	}
	return false
}

// ActivityStatus is the settler status while working on this assignment
func (a *Assignment) ActivityStatus() settler.Status {
	return ActivityStatusFor(a.assignmentType)
}

// ActivityStatusFor maps an assignment type to the settler status it implies
func ActivityStatusFor(t Type) settler.Status {
	switch t {
	case TypeQuest:
		return settler.StatusQuesting
	case TypeExploration:
		return settler.StatusExploring
	case TypeCrafting:
		return settler.StatusCrafting
	case TypeResting:
		return settler.StatusResting
	default:
		return settler.StatusWorking
	}
}

// MissingDependencies lists dependency tags not present in unlocks
func (a *Assignment) MissingDependencies(unlocks map[string]bool) []string {
	var missing []string
	for _, dep := range a.dependencies {
		if !unlocks[dep] {
			missing = append(missing, dep)
		}
	}
	return missing
}

// Start moves available -> in-progress. Completion is due once the adjusted
// duration has elapsed.
func (a *Assignment) Start(settlerID string, adj Adjustments, plannedRewards map[string]int, now time.Time) error {
	if a.state != StateAvailable {
		return &shared.InvalidStateError{Current: string(a.state), Attempted: "start"}
	}
	if settlerID == "" {
		return shared.NewValidationError("settler_id", "cannot be empty")
	}

	started := now
	completed := now.Add(time.Duration(adj.AdjustedDuration) * time.Millisecond)

	a.state = StateInProgress
	a.settlerID = settlerID
	a.startedAt = &started
	a.completedAt = &completed
	a.adjustments = &adj
	a.plannedRewards = copyRewards(plannedRewards)
	return nil
}

// IsDue reports whether an in-progress assignment has reached its completion time
func (a *Assignment) IsDue(now time.Time) bool {
	return a.state == StateInProgress && a.completedAt != nil && !a.completedAt.After(now)
}

// Complete moves in-progress -> completed
func (a *Assignment) Complete() error {
	if a.state != StateInProgress {
		return &shared.InvalidStateError{Current: string(a.state), Attempted: "complete"}
	}
	a.state = StateCompleted
	return nil
}

// Inform moves completed -> informed once the player has seen the result
func (a *Assignment) Inform() error {
	if a.state != StateCompleted {
		return &shared.InvalidStateError{Current: string(a.state), Attempted: "inform"}
	}
	a.state = StateInformed
	return nil
}

// RecordSettlerFound links the settler discovered on completion
func (a *Assignment) RecordSettlerFound(settlerID string) {
	a.settlerFoundID = settlerID
}

// IsFinished reports completed or informed
func (a *Assignment) IsFinished() bool {
	return a.state == StateCompleted || a.state == StateInformed
}

// CountsTowardUnlocks is true for finished quests
func (a *Assignment) CountsTowardUnlocks() bool {
	return a.assignmentType == TypeQuest && a.IsFinished()
}

func (a *Assignment) UnlockTags() []string { return a.unlocks }

// ComputeAdjustments derives the start-time snapshot for a settler
func ComputeAdjustments(s *settler.Settler, t Type, durationMs int64) Adjustments {
	timeMult := s.AdjustedTimeMultiplier(string(t))
	return Adjustments{
		AdjustedDuration: int64(math.Round(float64(durationMs) * timeMult)),
		EffectiveSpeed:   1 / timeMult,
		LootMultiplier:   s.AdjustedLootMultiplier(string(t)),
	}
}

// ScaleRewards applies a loot multiplier. A reward the template promises is
// never scaled away entirely.
func ScaleRewards(base map[string]int, lootMultiplier float64) map[string]int {
	out := make(map[string]int, len(base))
	for itemID, qty := range base {
		if qty <= 0 {
			continue
		}
		scaled := int(math.Round(float64(qty) * lootMultiplier))
		if scaled < 1 {
			scaled = 1
		}
		out[itemID] = scaled
	}
	return out
}

func copyRewards(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
