package config

// LoggingConfig controls the slog handler used by the CLI and the daemon
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output is stdout, stderr or file; file appends to FilePath
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`
}
