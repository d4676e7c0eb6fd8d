package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds CLI preferences stored in ~/.colony/config.json
type UserConfig struct {
	// Colony used when a command does not name one
	DefaultColonyID string `json:"default_colony_id,omitempty"`

	// Identity used by `colony create` when flags are omitted
	DefaultUserID   string `json:"default_user_id,omitempty"`
	DefaultServerID string `json:"default_server_id,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for the config file under the
// user's home directory
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".colony", "config.json"))
}

// NewUserConfigHandlerAt creates a handler for an explicit file path
func NewUserConfigHandlerAt(configPath string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &UserConfigHandler{configPath: configPath}, nil
}

// Load reads the user config from disk; a missing file yields an empty config
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if os.IsNotExist(err) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}
	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}
	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	return nil
}

// SetDefaultColony remembers the colony later commands act on
func (h *UserConfigHandler) SetDefaultColony(colonyID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}
	config.DefaultColonyID = colonyID
	return h.Save(config)
}

// SetDefaultIdentity remembers the user and server for colony creation
func (h *UserConfigHandler) SetDefaultIdentity(userID, serverID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}
	config.DefaultUserID = userID
	config.DefaultServerID = serverID
	return h.Save(config)
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
