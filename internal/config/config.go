// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete haven client configuration.
type Config struct {
	// ServerURL is the base URL of the haven backend.
	ServerURL string `toml:"server_url" json:"server_url"`

	// TimeoutSecs is the per-request timeout in seconds. The chat
	// endpoint waits on AI generation, so the default is generous.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// UI holds terminal UI preferences.
	UI UIConfig `toml:"ui" json:"ui"`

	// stateDir is where user.json, config and history live. Not
	// serialized; resolved from HAVEN_STATE_DIR or the home dir.
	stateDir string
}

// UIConfig contains terminal UI preferences.
type UIConfig struct {
	// ShowTimestamps displays message timestamps in the chat view.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`

	// CompactMode reduces message padding for small terminals.
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// Bounds for validation clamping.
const (
	MinTimeoutSecs     = 5
	MaxTimeoutSecs     = 300
	DefaultTimeoutSecs = 60
	DefaultServerURL   = "http://localhost:8080"
)

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		ServerURL:   DefaultServerURL,
		TimeoutSecs: DefaultTimeoutSecs,
		UI: UIConfig{
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, trying TOML first, then JSON, then
// defaults. Environment overrides are applied last and validation
// clamps out-of-range values rather than failing startup.
func Load() (*Config, error) {
	cfg := Default()

	dir, err := stateDir()
	if err != nil {
		return nil, err
	}
	cfg.stateDir = dir

	tomlPath := filepath.Join(dir, "config.toml")
	jsonPath := filepath.Join(dir, "config.json")

	if data, err := os.ReadFile(tomlPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", tomlPath, err)
		}
	} else if data, err := os.ReadFile(jsonPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.validate()
	return cfg, nil
}

// stateDir resolves the application state directory, creating it if
// needed. HAVEN_STATE_DIR wins over ~/.haven.
func stateDir() (string, error) {
	if dir := os.Getenv("HAVEN_STATE_DIR"); dir != "" {
		return dir, os.MkdirAll(dir, 0755)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".haven")
	return dir, os.MkdirAll(dir, 0755)
}

// applyEnvOverrides lets the environment win over the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HAVEN_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("HAVEN_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.TimeoutSecs = secs
		}
	}
}

// validate clamps out-of-range values and repairs unusable ones. A bad
// config file degrades to defaults instead of blocking startup.
func (c *Config) validate() {
	if c.TimeoutSecs < MinTimeoutSecs {
		c.TimeoutSecs = MinTimeoutSecs
	}
	if c.TimeoutSecs > MaxTimeoutSecs {
		c.TimeoutSecs = MaxTimeoutSecs
	}

	if u, err := url.Parse(c.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		c.ServerURL = DefaultServerURL
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration as TOML, atomically.
func (c *Config) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(c.ConfigPath(), buf.Bytes(), 0644)
}

// =============================================================================
// DERIVED PATHS AND VALUES
// =============================================================================

// StateDir returns the application state directory.
func (c *Config) StateDir() string {
	return c.stateDir
}

// ConfigPath returns the TOML config file path.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.stateDir, "config.toml")
}

// IdentityPath returns the persisted identity file path.
func (c *Config) IdentityPath() string {
	return filepath.Join(c.stateDir, "user.json")
}

// HistoryPath returns the REPL input history file path.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.stateDir, "history")
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}
