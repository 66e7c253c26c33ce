// Package config provides configuration management for lazylocker.
// It handles loading, saving, and validation of config.toml, with
// sensible defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cbwinslow/lazylocker/pkg/locker"
)

// Config holds all configuration for lazylocker. None of its fields
// are load-bearing for correctness. Load returns Default() when
// config.toml does not exist and an error when it is malformed.
type Config struct {
	mu sync.RWMutex

	Locker   LockerConfig   `toml:"locker"`
	Agent    AgentConfig    `toml:"agent"`
	Analyzer AnalyzerConfig `toml:"analyzer"`
}

// LockerConfig holds locker location overrides.
type LockerConfig struct {
	// Dir overrides the default locker directory resolved by
	// locker.DefaultDir.
	Dir string `toml:"dir"`
}

// AgentConfig holds agent daemon tuning.
type AgentConfig struct {
	// TTL is the session lifetime, expressed as a Go duration string
	// (e.g. "8h").
	TTL string `toml:"ttl"`
	// HousekeepingInterval is a Go duration string (e.g. "60s") parsed
	// by AgentHousekeepingInterval. The agent daemon does not read it;
	// its TTL check runs every agent.HousekeepingInterval.
	HousekeepingInterval string `toml:"housekeeping_interval"`
}

// AnalyzerConfig holds tuning for the shell-history usage analyzer.
// It never affects correctness of the vault itself.
type AnalyzerConfig struct {
	// Enabled toggles the usage-count decoration in the editor.
	Enabled bool `toml:"enabled"`
	// HistoryPath overrides the shell history file to grep. Empty
	// means the first of $HISTFILE, ~/.bash_history, ~/.zsh_history.
	HistoryPath string `toml:"history_path"`
}

// Default returns a Config with lazylocker's built-in defaults.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			TTL:                  "8h",
			HousekeepingInterval: "60s",
		},
		Analyzer: AnalyzerConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration from path. A missing file yields
// Default(); a present-but-malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDefaultPath loads config.toml from the user config
// directory next to the locker, falling back to Default() if the
// directory cannot be resolved.
func LoadFromDefaultPath() (*Config, error) {
	dir, err := locker.DefaultDir()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(dir, "config.toml"))
}

// Save writes the configuration to path, creating its directory if
// necessary.
func (c *Config) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// LockerDir resolves the effective locker directory: the config
// override if set, otherwise locker.DefaultDir.
func (c *Config) LockerDir() (string, error) {
	c.mu.RLock()
	override := c.Locker.Dir
	c.mu.RUnlock()
	if override != "" {
		return override, nil
	}
	return locker.DefaultDir()
}

// AgentTTL parses the configured agent TTL, falling back to the
// agent package's own default on a missing or malformed value.
func (c *Config) AgentTTL(fallback time.Duration) time.Duration {
	c.mu.RLock()
	raw := c.Agent.TTL
	c.mu.RUnlock()
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

// AgentHousekeepingInterval parses the configured housekeeping
// interval, falling back on a missing or malformed value.
func (c *Config) AgentHousekeepingInterval(fallback time.Duration) time.Duration {
	c.mu.RLock()
	raw := c.Agent.HousekeepingInterval
	c.mu.RUnlock()
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
