package config

import "time"

// DaemonConfig holds the sweep daemon's process settings
type DaemonConfig struct {
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// ShutdownTimeout bounds how long a running sweep may take to drain
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
