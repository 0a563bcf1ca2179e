package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigDir is the name of the config directory in home
	ConfigDir = ".cuekit"

	// ConfigFileName is the name of the config file
	ConfigFileName = "config.toml"
)

// FileConfig represents the user-level configuration from ~/.cuekit/config.toml
type FileConfig struct {
	APIKey      string
	TeamID      string
	BaseURL     string
	CachePath   string
	CacheMaxAge string
}

// configFile represents the raw TOML structure
type configFile struct {
	API   apiConfig   `toml:"api"`
	Cache cacheConfig `toml:"cache"`
}

type apiConfig struct {
	Key     string `toml:"key"`
	TeamID  string `toml:"team_id"`
	BaseURL string `toml:"base_url"`
}

type cacheConfig struct {
	Path   string `toml:"path"`
	MaxAge string `toml:"max_age"`
}

// LoadFileConfig loads the configuration from ~/.cuekit/config.toml.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFileConfig() (*FileConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadFileConfigFromDir(homeDir)
}

// LoadFileConfigFromDir loads config using the specified directory as home.
// This is useful for testing.
func LoadFileConfigFromDir(homeDir string) (*FileConfig, error) {
	configPath := filepath.Join(homeDir, ConfigDir, ConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &FileConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var rawConfig configFile
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	return &FileConfig{
		APIKey:      rawConfig.API.Key,
		TeamID:      rawConfig.API.TeamID,
		BaseURL:     rawConfig.API.BaseURL,
		CachePath:   rawConfig.Cache.Path,
		CacheMaxAge: rawConfig.Cache.MaxAge,
	}, nil
}
