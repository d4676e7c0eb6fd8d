package config

import "time"

// MetricsConfig controls the daemon's Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Host defaults to localhost so the endpoint is not exposed by accident
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path string `mapstructure:"path"`

	// PollInterval is how often the colony count gauge is refreshed
	PollInterval time.Duration `mapstructure:"poll_interval"`
}
