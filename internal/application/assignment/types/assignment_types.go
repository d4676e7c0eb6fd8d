package types

import (
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Command and response types of the assignment application layer live here
// so the middleware and the services can refer to them without importing
// the handlers.

// ============================================================================
// Views
// ============================================================================

// AssignmentView is a read-only snapshot of an assignment
type AssignmentView struct {
	ID             string
	ColonyID       string
	TaskID         string
	Name           string
	Type           string
	State          string
	SettlerID      string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	DurationMs     int64
	PlannedRewards map[string]int
	Adjustments    *assignment.Adjustments
	SettlerFoundID string
	Location       *shared.Location
	Dependencies   []string
}

// NewAssignmentView snapshots an assignment
func NewAssignmentView(a *assignment.Assignment) AssignmentView {
	return AssignmentView{
		ID:             a.ID(),
		ColonyID:       a.ColonyID(),
		TaskID:         a.TaskID(),
		Name:           a.Name(),
		Type:           string(a.Type()),
		State:          string(a.State()),
		SettlerID:      a.SettlerID(),
		StartedAt:      a.StartedAt(),
		CompletedAt:    a.CompletedAt(),
		DurationMs:     a.DurationMs(),
		PlannedRewards: a.PlannedRewards(),
		Adjustments:    a.Adjustments(),
		SettlerFoundID: a.SettlerFoundID(),
		Location:       a.Location(),
		Dependencies:   a.Dependencies(),
	}
}

// ============================================================================
// Start
// ============================================================================

// StartAssignmentCommand assigns an idle settler to an available assignment
type StartAssignmentCommand struct {
	AssignmentID string
	SettlerID    string
}

// StartAssignmentResponse carries the assignment after it moved in-progress
type StartAssignmentResponse struct {
	Assignment AssignmentView
}

// StartExplorationCommand sends a settler to explore a map tile
type StartExplorationCommand struct {
	ColonyID  string
	SettlerID string
	X         int
	Y         int
}

// StartRestingCommand lets a settler recover energy for Duration
type StartRestingCommand struct {
	ColonyID  string
	SettlerID string
	Duration  time.Duration
}

// StartCraftingCommand consumes recipe inputs and starts crafting its outputs
type StartCraftingCommand struct {
	ColonyID  string
	SettlerID string
	RecipeID  string
}

// ============================================================================
// Completion
// ============================================================================

// CompleteDueAssignmentsCommand resolves every due assignment of a colony.
// A zero Now means the current time.
type CompleteDueAssignmentsCommand struct {
	ColonyID string
	Now      time.Time
}

// CompletedAssignment summarizes one resolved assignment
type CompletedAssignment struct {
	AssignmentID   string
	Name           string
	Type           string
	SettlerID      string
	CompletedAt    time.Time
	Transferred    map[string]int
	Kept           map[string]int
	Lost           map[string]int
	SettlerFoundID string
}

// CompleteDueAssignmentsResponse lists what was completed
type CompleteDueAssignmentsResponse struct {
	ColonyID  string
	Completed []CompletedAssignment
}

// InformAssignmentCommand acknowledges a completed assignment
type InformAssignmentCommand struct {
	AssignmentID string
}

// InformAssignmentResponse reports the assignment's new state
type InformAssignmentResponse struct {
	ID    string
	State string
}

// ============================================================================
// Quests
// ============================================================================

// SyncQuestAssignmentsCommand instantiates quest templates the colony lacks
type SyncQuestAssignmentsCommand struct {
	ColonyID string
}

// SyncQuestAssignmentsResponse lists the assignments created
type SyncQuestAssignmentsResponse struct {
	Created []AssignmentView
}

// ============================================================================
// Queries
// ============================================================================

// ListAssignmentsQuery lists a colony's assignments, optionally by state
type ListAssignmentsQuery struct {
	ColonyID string
	State    string
}

// ListAssignmentsResponse holds the matching assignments
type ListAssignmentsResponse struct {
	Assignments []AssignmentView
}
