package persistence

import (
	"time"
)

// ColonyModel represents the colonies table
type ColonyModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	UserID          string    `gorm:"column:user_id;not null;uniqueIndex:idx_colonies_user_server"`
	ServerID        string    `gorm:"column:server_id;not null;uniqueIndex:idx_colonies_user_server;uniqueIndex:idx_colonies_server_spiral"`
	ServerType      string    `gorm:"column:server_type"`
	ServerName      string    `gorm:"column:server_name"`
	Name            string    `gorm:"column:name;not null"`
	SettlerIDs      string    `gorm:"column:settler_ids;type:text"` // JSON array as text
	MaxInventory    int       `gorm:"column:max_inventory;not null"`
	Logs            string    `gorm:"column:logs;type:text"` // JSON array as text
	HomesteadX      int       `gorm:"column:homestead_x;not null"`
	HomesteadY      int       `gorm:"column:homestead_y;not null"`
	SpiralLayer     int       `gorm:"column:spiral_layer;not null"`
	SpiralPosition  int       `gorm:"column:spiral_position;not null"`
	SpiralDirection int       `gorm:"column:spiral_direction;not null"`
	SpiralIndex     int       `gorm:"column:spiral_index;not null;uniqueIndex:idx_colonies_server_spiral"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
}

func (ColonyModel) TableName() string {
	return "colonies"
}

// SettlerModel represents the settlers table
type SettlerModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	ColonyID          string    `gorm:"column:colony_id;not null;index"`
	Name              string    `gorm:"column:name;not null"`
	Strength          int       `gorm:"column:strength;not null"`
	Speed             int       `gorm:"column:speed;not null"`
	Intelligence      int       `gorm:"column:intelligence;not null"`
	Resilience        int       `gorm:"column:resilience;not null"`
	Skills            string    `gorm:"column:skills;type:text"` // JSON object as text
	Traits            string    `gorm:"column:traits;type:text"` // JSON array as text
	Status            string    `gorm:"column:status;not null;index"`
	Energy            float64   `gorm:"column:energy;not null"`
	EnergyLastUpdated time.Time `gorm:"column:energy_last_updated;not null"`
	Carry             string    `gorm:"column:carry;type:text"` // JSON array as text
	MaxCarrySlots     int       `gorm:"column:max_carry_slots;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;not null"`
}

func (SettlerModel) TableName() string {
	return "settlers"
}

// AssignmentModel represents the assignments table. TaskID is NULL for
// on-demand assignments so the (colony, task) unique index only binds
// templated ones.
type AssignmentModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	ColonyID       string     `gorm:"column:colony_id;not null;index;uniqueIndex:idx_assignments_colony_task"`
	TaskID         *string    `gorm:"column:task_id;uniqueIndex:idx_assignments_colony_task"`
	Name           string     `gorm:"column:name;not null"`
	Type           string     `gorm:"column:type;not null"`
	State          string     `gorm:"column:state;not null;index"`
	SettlerID      string     `gorm:"column:settler_id"`
	StartedAt      *time.Time `gorm:"column:started_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at;index"`
	DurationMs     int64      `gorm:"column:duration_ms;not null"`
	PlannedRewards string     `gorm:"column:planned_rewards;type:text"` // JSON object as text
	Adjustments    string     `gorm:"column:adjustments;type:text"`     // JSON object as text, empty until started
	SettlerFoundID string     `gorm:"column:settler_found_id"`
	LocationX      *int       `gorm:"column:location_x"`
	LocationY      *int       `gorm:"column:location_y"`
	Dependencies   string     `gorm:"column:dependencies;type:text"` // JSON array as text
	Unlocks        string     `gorm:"column:unlocks;type:text"`      // JSON array as text
	CreatedAt      time.Time  `gorm:"column:created_at;not null"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}

// InventoryItemModel represents the inventory_items table, one row per stack
type InventoryItemModel struct {
	ColonyID   string `gorm:"column:colony_id;primaryKey"`
	ItemID     string `gorm:"column:item_id;primaryKey"`
	Position   int    `gorm:"column:position;not null"`
	Name       string `gorm:"column:name"`
	Icon       string `gorm:"column:icon"`
	Type       string `gorm:"column:type"`
	Quantity   int    `gorm:"column:quantity;not null"`
	Properties string `gorm:"column:properties;type:text"` // JSON object as text
}

func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// SpiralCounterModel represents the spiral_counters table
type SpiralCounterModel struct {
	ServerID  string `gorm:"column:server_id;primaryKey"`
	NextIndex int    `gorm:"column:next_index;not null;default:0"`
}

func (SpiralCounterModel) TableName() string {
	return "spiral_counters"
}

// MapTileModel represents the map_tiles table
type MapTileModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ColonyID  string    `gorm:"column:colony_id;not null;uniqueIndex:idx_map_tiles_colony_xy"`
	X         int       `gorm:"column:x;not null;uniqueIndex:idx_map_tiles_colony_xy"`
	Y         int       `gorm:"column:y;not null;uniqueIndex:idx_map_tiles_colony_xy"`
	Terrain   string    `gorm:"column:terrain;not null"`
	Explored  bool      `gorm:"column:explored;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (MapTileModel) TableName() string {
	return "map_tiles"
}
