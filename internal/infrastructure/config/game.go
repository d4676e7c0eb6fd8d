package config

import "time"

// GameConfig holds simulation tuning that is not part of the catalog
type GameConfig struct {
	// Path to catalog.yaml; empty uses the built-in catalog
	CatalogPath string `mapstructure:"catalog_path" validate:"omitempty,file"`

	// Spiral step between consecutive colonies on a server
	StepMultiplier int `mapstructure:"step_multiplier" validate:"min=1"`

	// Placement attempts after a spiral index collision
	MaxPlacementRetries int `mapstructure:"max_placement_retries" validate:"min=0"`

	// Base delay between placement attempts; jitter is added on top
	PlacementBackoff time.Duration `mapstructure:"placement_backoff"`

	MaxCarrySlots  int     `mapstructure:"max_carry_slots" validate:"min=1"`
	MaxInventory   int     `mapstructure:"max_inventory" validate:"min=1"`
	StartingEnergy float64 `mapstructure:"starting_energy" validate:"min=0,max=100"`

	// RNG seed for settler generation, discovery rolls and terrain; 0 picks one at startup
	Seed int64 `mapstructure:"seed"`

	FoodPerSettlerPerDay float64 `mapstructure:"food_per_settler_per_day" validate:"gt=0"`
}

// SweepConfig holds the scheduled completion sweep settings
type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"required"`

	// Colonies processed per second; bursts allow short catch-up runs
	RatePerSecond float64 `mapstructure:"rate_per_second" validate:"gt=0"`
	Burst         int     `mapstructure:"burst" validate:"min=1"`
}
