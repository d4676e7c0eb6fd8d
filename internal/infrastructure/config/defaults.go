package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "colony"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "colony"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}
	if cfg.Database.Pool.MaxIdleTime == 0 {
		cfg.Database.Pool.MaxIdleTime = time.Minute
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "silent"
	}

	// Game defaults
	if cfg.Game.StepMultiplier == 0 {
		cfg.Game.StepMultiplier = 3
	}
	if cfg.Game.MaxPlacementRetries == 0 {
		cfg.Game.MaxPlacementRetries = 5
	}
	if cfg.Game.PlacementBackoff == 0 {
		cfg.Game.PlacementBackoff = 50 * time.Millisecond
	}
	if cfg.Game.MaxCarrySlots == 0 {
		cfg.Game.MaxCarrySlots = 5
	}
	if cfg.Game.MaxInventory == 0 {
		cfg.Game.MaxInventory = 20
	}
	if cfg.Game.StartingEnergy == 0 {
		cfg.Game.StartingEnergy = 100
	}
	if cfg.Game.FoodPerSettlerPerDay == 0 {
		cfg.Game.FoodPerSettlerPerDay = 2
	}

	// Sweep defaults
	if cfg.Sweep.Interval == 0 {
		cfg.Sweep.Interval = 24 * time.Hour
	}
	if cfg.Sweep.RatePerSecond == 0 {
		cfg.Sweep.RatePerSecond = 20
	}
	if cfg.Sweep.Burst == 0 {
		cfg.Sweep.Burst = 5
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/colony-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.PollInterval == 0 {
		cfg.Metrics.PollInterval = time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
