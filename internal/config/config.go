// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"sodacraft/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains recipe catalog settings
	Catalog CatalogConfig `json:"catalog"`

	// Safety contains safety limits settings
	Safety SafetyConfig `json:"safety"`

	// Output contains output settings
	Output OutputConfig `json:"output"`

	// Server contains API server settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig contains recipe catalog settings
type CatalogConfig struct {
	// Dir is the directory holding bases/ and flavors/ recipe records
	Dir string `json:"dir"`

	// Watch reloads the catalog when recipe files change
	Watch bool `json:"watch"`
}

// SafetyConfig contains safety limits settings
type SafetyConfig struct {
	// LimitsPath is the path to the safety limits file (.hcl or .json)
	LimitsPath string `json:"limits_path"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`
}

// ServerConfig contains API server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	baseDir := filepath.Join(homeDir, ".sodacraft")

	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			Dir:   filepath.Join(baseDir, "catalog"),
			Watch: false,
		},
		Safety: SafetyConfig{
			LimitsPath: filepath.Join(baseDir, "limits.hcl"),
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
