// Package config provides configuration file support for jailprof.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Color output modes for the ui.color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the jailprof configuration file.
type Config struct {
	// Profiles contains profile location settings.
	Profiles ProfilesConfig `toml:"profiles"`

	// UI contains terminal interaction settings.
	UI UIConfig `toml:"ui"`

	// Logging contains logging settings.
	Logging LoggingConfig `toml:"logging"`
}

// ProfilesConfig contains profile location settings.
type ProfilesConfig struct {
	// UserDir is the per-user profile directory.
	// Defaults to ~/.config/firejail if not set.
	UserDir string `toml:"user_dir"`

	// SystemDir is the system-wide profile directory.
	// Defaults to /etc/firejail if not set.
	SystemDir string `toml:"system_dir"`
}

// UIConfig contains terminal interaction settings.
type UIConfig struct {
	// Editor is the command used to edit profiles.
	// Falls back to $EDITOR, then vim.
	Editor string `toml:"editor"`

	// Pager is the command used to page profile output.
	// Falls back to $PAGER, then less.
	Pager string `toml:"pager"`

	// Color controls colored output: "auto", "always", or "never".
	// Default: "auto"
	Color string `toml:"color"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum level written: "debug", "info", "warn", or
	// "error". Default: "info"
	Level string `toml:"level"`

	// Receivers is a list of log destinations.
	Receivers []ReceiverConfig `toml:"receivers"`

	// Attributes are custom key-value pairs added to all log entries.
	Attributes map[string]string `toml:"attributes"`
}

// ReceiverConfig defines a single log receiver.
type ReceiverConfig struct {
	// Type is the receiver type: "syslog", "syslog-remote", or "otlp".
	Type string `toml:"type"`

	// Address is the remote server address (for syslog-remote and otlp).
	Address string `toml:"address"`

	// Endpoint is the OTLP endpoint URL (alias for Address, for otlp type).
	Endpoint string `toml:"endpoint"`

	// Protocol is the transport protocol:
	// - For syslog-remote: "udp" or "tcp" (default: udp)
	// - For otlp: "http" or "grpc" (default: http)
	Protocol string `toml:"protocol"`

	// Facility is the syslog facility (e.g., "local0").
	Facility string `toml:"facility"`

	// Tag is the syslog program tag.
	Tag string `toml:"tag"`

	// Headers are custom HTTP headers for OTLP.
	Headers map[string]string `toml:"headers"`

	// BatchSize is the OTLP batch size before flush.
	BatchSize int `toml:"batch_size"`

	// FlushInterval is the OTLP flush interval (e.g., "5s").
	FlushInterval string `toml:"flush_interval"`

	// Insecure disables TLS verification for gRPC connections.
	Insecure bool `toml:"insecure"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Color: ColorAuto,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigPath returns the path to the user config file.
// Uses XDG_CONFIG_HOME/jailprof/config.toml or ~/.config/jailprof/config.toml
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "jailprof", "config.toml")
}

// SystemConfigPath returns the path to the system-wide config file.
func SystemConfigPath() string {
	return "/etc/jailprof/config.toml"
}

// Load reads the system and user configuration files and merges them
// over the defaults, user values taking precedence. Missing files are
// fine.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range []string{SystemConfigPath(), ConfigPath()} {
		overlay, err := loadRaw(path)
		if err != nil {
			return nil, err
		}
		cfg = mergeConfigs(cfg, overlay)
	}
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads the configuration from exactly the specified path,
// skipping the usual merge. Returns default config if the file doesn't
// exist.
func LoadFrom(path string) (*Config, error) {
	overlay, err := loadRaw(path)
	if err != nil {
		return nil, err
	}
	cfg := mergeConfigs(DefaultConfig(), overlay)
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadRaw parses one file without applying defaults. Returns nil when
// the file doesn't exist.
func loadRaw(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// expandPaths expands ~ in the profile directories.
func (c *Config) expandPaths() {
	if c.Profiles.UserDir != "" {
		c.Profiles.UserDir = expandHome(c.Profiles.UserDir)
	}
	if c.Profiles.SystemDir != "" {
		c.Profiles.SystemDir = expandHome(c.Profiles.SystemDir)
	}
}

// Editor returns the editor command: config value, then $EDITOR, then
// vim.
func (c *Config) Editor() string {
	if c.UI.Editor != "" {
		return c.UI.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}

// Pager returns the pager command: config value, then $PAGER, then
// less.
func (c *Config) Pager() string {
	if c.UI.Pager != "" {
		return c.UI.Pager
	}
	if pager := os.Getenv("PAGER"); pager != "" {
		return pager
	}
	return "less"
}

// Validate checks configuration values for security and correctness.
func (c *Config) Validate() error {
	// Validate profile directories (no path traversal)
	if c.Profiles.UserDir != "" {
		if err := validatePath(c.Profiles.UserDir); err != nil {
			return fmt.Errorf("profiles.user_dir: %w", err)
		}
	}
	if c.Profiles.SystemDir != "" {
		if err := validatePath(c.Profiles.SystemDir); err != nil {
			return fmt.Errorf("profiles.system_dir: %w", err)
		}
	}

	validColors := map[string]bool{ColorAuto: true, ColorAlways: true, ColorNever: true, "": true}
	if !validColors[c.UI.Color] {
		return fmt.Errorf("ui.color must be 'auto', 'always', or 'never', got %q", c.UI.Color)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %q", c.Logging.Level)
	}

	validTypes := map[string]bool{"syslog": true, "syslog-remote": true, "otlp": true}
	for i, recv := range c.Logging.Receivers {
		if !validTypes[recv.Type] {
			return fmt.Errorf("logging.receivers[%d].type must be 'syslog', 'syslog-remote', or 'otlp', got %q", i, recv.Type)
		}
		if recv.Type == "syslog-remote" && recv.Address == "" {
			return fmt.Errorf("logging.receivers[%d]: syslog-remote requires an address", i)
		}
		if recv.Type == "otlp" && recv.Address == "" && recv.Endpoint == "" {
			return fmt.Errorf("logging.receivers[%d]: otlp requires an endpoint", i)
		}
		if recv.BatchSize < 0 {
			return fmt.Errorf("logging.receivers[%d].batch_size cannot be negative, got %d", i, recv.BatchSize)
		}
		if recv.FlushInterval != "" {
			if _, err := time.ParseDuration(recv.FlushInterval); err != nil {
				return fmt.Errorf("logging.receivers[%d].flush_interval: %w", i, err)
			}
		}
	}

	return nil
}

// validatePath checks a path for security issues like path traversal.
func validatePath(path string) error {
	// Check before cleaning because Clean() resolves ".." which hides
	// the attempt
	if strings.Contains(path, "..") {
		return fmt.Errorf("path contains traversal sequence: %q", path)
	}

	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) {
		return fmt.Errorf("path must be absolute: %q", path)
	}

	return nil
}

// expandHome expands ~ to the user's home directory.
func expandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return home
	}

	if path[1] == '/' {
		return filepath.Join(home, path[2:])
	}

	return path
}

// GenerateDefault returns the default configuration as a TOML string
// with comments explaining each option.
func GenerateDefault() string {
	return `# jailprof configuration file
# Location: ~/.config/jailprof/config.toml
# System-wide defaults can be placed in /etc/jailprof/config.toml;
# values here take precedence.

# Profile locations
[profiles]
# Per-user profile directory
# user_dir = "~/.config/firejail"

# System-wide profile directory
# system_dir = "/etc/firejail"

# Terminal interaction
[ui]
# Editor used by 'jailprof edit' (falls back to $EDITOR, then vim)
# editor = "vim"

# Pager used by 'jailprof cat' (falls back to $PAGER, then less)
# pager = "less"

# Colored output: "auto", "always", or "never"
color = "auto"

# Logging configuration
[logging]
# Minimum level written: "debug", "info", "warn", or "error"
level = "info"

# Custom attributes added to all log entries
# [logging.attributes]
# environment = "workstation"

# Example: Local syslog
# [[logging.receivers]]
# type = "syslog"
# facility = "local0"
# tag = "jailprof"

# Example: Remote syslog server
# [[logging.receivers]]
# type = "syslog-remote"
# address = "logs.example.com:514"
# protocol = "udp"  # or "tcp"
# facility = "local0"
# tag = "jailprof"

# Example: OpenTelemetry collector (HTTP)
# [[logging.receivers]]
# type = "otlp"
# endpoint = "http://localhost:4318/v1/logs"
# protocol = "http"  # default
# headers = { "Authorization" = "Bearer token" }
# batch_size = 100
# flush_interval = "5s"

# Example: OpenTelemetry collector (gRPC)
# [[logging.receivers]]
# type = "otlp"
# endpoint = "localhost:4317"
# protocol = "grpc"
# insecure = true  # disable TLS for local testing
# batch_size = 100
# flush_interval = "5s"
`
}
