package types

import (
	"time"

	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
)

// ColonyView is a read-only snapshot of a colony
type ColonyView struct {
	ID           string
	UserID       string
	ServerID     string
	ServerType   string
	ServerName   string
	Name         string
	SettlerIDs   []string
	MaxInventory int
	Placement    colony.Placement
	Logs         []colony.LogEntry
	CreatedAt    time.Time
}

// NewColonyView snapshots a colony
func NewColonyView(c *colony.Colony) ColonyView {
	return ColonyView{
		ID:           c.ID(),
		UserID:       c.UserID(),
		ServerID:     c.ServerID(),
		ServerType:   c.ServerType(),
		ServerName:   c.ServerName(),
		Name:         c.Name(),
		SettlerIDs:   c.SettlerIDs(),
		MaxInventory: c.MaxInventory(),
		Placement:    c.Placement(),
		Logs:         c.Logs(),
		CreatedAt:    c.CreatedAt(),
	}
}

// ============================================================================
// Creation
// ============================================================================

// CreateColonyCommand founds a user's colony on a server. Zero
// StepMultiplier and MaxRetries fall back to the configured defaults.
type CreateColonyCommand struct {
	UserID         string
	ServerID       string
	Name           string
	ServerType     string
	ServerName     string
	StepMultiplier int
	MaxRetries     int
}

// CreateColonyResponse carries the new colony and the attempts it took
type CreateColonyResponse struct {
	Colony   ColonyView
	Attempts int
}

// ============================================================================
// Onboarding
// ============================================================================

// GenerateOnboardingSettlersCommand rolls the candidates a new colony picks from
type GenerateOnboardingSettlersCommand struct {
	ColonyID string
}

// GenerateOnboardingSettlersResponse lists the candidates
type GenerateOnboardingSettlersResponse struct {
	Candidates []settlerTypes.SettlerView
}

// ChooseOnboardingSettlerCommand keeps one candidate and discards the rest
type ChooseOnboardingSettlerCommand struct {
	ColonyID  string
	SettlerID string
}

// ChooseOnboardingSettlerResponse carries the chosen settler
type ChooseOnboardingSettlerResponse struct {
	Settler   settlerTypes.SettlerView
	Discarded []string
}

// ============================================================================
// Inventory
// ============================================================================

// DropColonyItemsCommand discards items from the colony inventory
type DropColonyItemsCommand struct {
	ColonyID string
	ItemID   string
	Quantity int
}

// DropColonyItemsResponse reports how many units were dropped
type DropColonyItemsResponse struct {
	Dropped   int
	Remaining int
}

// ============================================================================
// Queries
// ============================================================================

// GetColonyOverviewQuery loads a colony by id, or by user and server
type GetColonyOverviewQuery struct {
	ColonyID string
	UserID   string
	ServerID string
}

// GetColonyOverviewResponse is everything a colony screen shows
type GetColonyOverviewResponse struct {
	Colony    ColonyView
	Settlers  []settlerTypes.SettlerView
	Inventory []colony.Item
	Summary   colony.Summary
}
