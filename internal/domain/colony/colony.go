package colony

import (
	"fmt"
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// MaxLogEntries is how many recent log entries a colony keeps
const MaxLogEntries = 50

// DefaultMaxInventory is the item-type slot cap of a new colony
const DefaultMaxInventory = 20

// Log entry types
const (
	LogColonyFounded       = "colony-founded"
	LogAssignmentCompleted = "assignment-completed"
	LogSettlerFound        = "settler-found"
	LogSettlerJoined       = "settler-joined"
	LogLostItems           = "lost-items"
	LogItemsDropped        = "items-dropped"
	LogCraftingStarted     = "crafting-started"
)

// LogEntry is one line of a colony's activity feed
type LogEntry struct {
	Timestamp time.Time
	Type      string
	Message   string
	Meta      map[string]interface{}
}

// Placement is a colony's position on its server's spiral
type Placement struct {
	Location  shared.Location
	Layer     int
	Position  int
	Direction int
	Index     int
}

// Colony is the aggregate that owns settlers, the inventory and the log
type Colony struct {
	id           string
	userID       string
	serverID     string
	serverType   string
	serverName   string
	name         string
	settlerIDs   []string
	maxInventory int
	logs         []LogEntry
	placement    Placement
	createdAt    time.Time
}

// NewColony founds a colony at a spiral placement
func NewColony(id, userID, serverID, name, serverType, serverName string, maxInventory int, placement Placement, now time.Time) (*Colony, error) {
	if id == "" {
		return nil, fmt.Errorf("colony id cannot be empty")
	}
	if userID == "" {
		return nil, shared.NewValidationError("user_id", "cannot be empty")
	}
	if serverID == "" {
		return nil, shared.NewValidationError("server_id", "cannot be empty")
	}
	if maxInventory <= 0 {
		maxInventory = DefaultMaxInventory
	}

	c := &Colony{
		id:           id,
		userID:       userID,
		serverID:     serverID,
		serverType:   serverType,
		serverName:   serverName,
		name:         name,
		maxInventory: maxInventory,
		placement:    placement,
		createdAt:    now,
	}
	c.AddLogEntry(LogColonyFounded, fmt.Sprintf("%s was founded at %s", name, placement.Location), map[string]interface{}{
		"spiral_index": placement.Index,
	}, now)
	return c, nil
}

// Data is the persisted shape of a colony
type Data struct {
	ID           string
	UserID       string
	ServerID     string
	ServerType   string
	ServerName   string
	Name         string
	SettlerIDs   []string
	MaxInventory int
	Logs         []LogEntry
	Placement    Placement
	CreatedAt    time.Time
}

// Reconstruct rebuilds a colony from storage
func Reconstruct(d Data) *Colony {
	return &Colony{
		id:           d.ID,
		userID:       d.UserID,
		serverID:     d.ServerID,
		serverType:   d.ServerType,
		serverName:   d.ServerName,
		name:         d.Name,
		settlerIDs:   d.SettlerIDs,
		maxInventory: d.MaxInventory,
		logs:         d.Logs,
		placement:    d.Placement,
		createdAt:    d.CreatedAt,
	}
}

func (c *Colony) ToData() Data {
	return Data{
		ID:           c.id,
		UserID:       c.userID,
		ServerID:     c.serverID,
		ServerType:   c.serverType,
		ServerName:   c.serverName,
		Name:         c.name,
		SettlerIDs:   c.SettlerIDs(),
		MaxInventory: c.maxInventory,
		Logs:         c.Logs(),
		Placement:    c.placement,
		CreatedAt:    c.createdAt,
	}
}

func (c *Colony) ID() string { return c.id }
func (c *Colony) UserID() string { return c.userID }
func (c *Colony) ServerID() string { return c.serverID }
func (c *Colony) ServerType() string { return c.serverType }
func (c *Colony) ServerName() string { return c.serverName }
func (c *Colony) Name() string { return c.name }
func (c *Colony) MaxInventory() int { return c.maxInventory }
func (c *Colony) Placement() Placement { return c.placement }
func (c *Colony) CreatedAt() time.Time { return c.createdAt }
func (c *Colony) SettlerCount() int { return len(c.settlerIDs) }

func (c *Colony) SettlerIDs() []string {
	return append([]string(nil), c.settlerIDs...)
}

func (c *Colony) Logs() []LogEntry {
	return append([]LogEntry(nil), c.logs...)
}

// HasSettler reports whether the settler is a member of this colony
func (c *Colony) HasSettler(settlerID string) bool {
	for _, id := range c.settlerIDs {
		if id == settlerID {
			return true
		}
	}
	return false
}

// AddSettler records a new member; adding an existing member is a no-op
func (c *Colony) AddSettler(settlerID string) {
	if c.HasSettler(settlerID) {
		return
	}
	c.settlerIDs = append(c.settlerIDs, settlerID)
}

// AddLogEntry appends to the activity feed, keeping only the most recent
// MaxLogEntries entries
func (c *Colony) AddLogEntry(logType, message string, meta map[string]interface{}, now time.Time) {
	c.logs = append(c.logs, LogEntry{
		Timestamp: now,
		Type:      logType,
		Message:   message,
		Meta:      meta,
	})
	if len(c.logs) > MaxLogEntries {
		c.logs = append([]LogEntry(nil), c.logs[len(c.logs)-MaxLogEntries:]...)
	}
}

// UnlockSource is anything that can contribute unlock tags, in practice a
// finished quest assignment
type UnlockSource interface {
	CountsTowardUnlocks() bool
	UnlockTags() []string
}

// Unlocks unions the unlock tags of every source that counts
func Unlocks[S UnlockSource](sources []S) map[string]bool {
	unlocks := make(map[string]bool)
	for _, src := range sources {
		if !src.CountsTowardUnlocks() {
			continue
		}
		for _, tag := range src.UnlockTags() {
			unlocks[tag] = true
		}
	}
	return unlocks
}
