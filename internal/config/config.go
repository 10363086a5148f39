// Package config handles loading and managing triage configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ServerConfig holds HTTP API server configuration.
type ServerConfig struct {
	APIPort         int      `toml:"api_port"`    // HTTP server port (default: 8080)
	BindAddr        string   `toml:"bind_addr"`   // Bind address (default: 127.0.0.1)
	APIKey          string   `toml:"api_key"`     // API authentication key
	CORSOrigins     []string `toml:"cors_origins"`
	CORSCredentials bool     `toml:"cors_credentials"`
	CORSMaxAge      int      `toml:"cors_max_age"`
}

// RefreshConfig holds the periodic re-ingestion schedule.
type RefreshConfig struct {
	Schedule string `toml:"schedule"` // Cron expression (e.g. "*/5 * * * *")
	Enabled  bool   `toml:"enabled"`
}

// SourcesConfig selects where raw messages come from.
type SourcesConfig struct {
	Fixtures bool     `toml:"fixtures"` // Built-in demo data set
	EMLDirs  []string `toml:"eml_dirs"` // Directories of .eml files
}

// Config represents the triage configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Refresh RefreshConfig `toml:"refresh"`
	Sources SourcesConfig `toml:"sources"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// DefaultHome returns the default triage home directory.
// Respects the TRIAGE_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("TRIAGE_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".triage"
	}
	return filepath.Join(home, ".triage")
}

// Load reads the configuration from the specified file. If path is
// empty, uses the default location (~/.triage/config.toml). A missing
// config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()

	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		Server: ServerConfig{
			APIPort:  8080,
			BindAddr: "127.0.0.1",
		},
		Refresh: RefreshConfig{
			Schedule: "*/5 * * * *",
			Enabled:  true,
		},
		Sources: SourcesConfig{
			Fixtures: true,
		},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	for i, dir := range cfg.Sources.EMLDirs {
		cfg.Sources.EMLDirs[i] = expandPath(dir)
	}

	return cfg, nil
}

// ConfigFilePath returns the path the config is loaded from by
// default.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.HomeDir, "config.toml")
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
