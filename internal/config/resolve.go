package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

// Environment variables recognized by the CLI. They override the config file.
const (
	EnvAPIKey  = "CLICKUP_API_KEY"
	EnvTeamID  = "CLICKUP_TEAM_ID"
	EnvBaseURL = "CUEKIT_API_URL"
)

// DefaultCacheMaxAge is how long cached task records stay fresh when the
// config file does not set cache.max_age.
const DefaultCacheMaxAge = 5 * time.Minute

// ResolvedConfig represents the final merged configuration with all
// precedence rules applied. Precedence order (highest to lowest):
// 1. Environment variables (CLICKUP_API_KEY, CLICKUP_TEAM_ID, CUEKIT_API_URL)
// 2. Config file (~/.cuekit/config.toml)
// 3. Built-in defaults
type ResolvedConfig struct {
	APIKey      string
	TeamID      string
	BaseURL     string
	CachePath   string
	CacheMaxAge time.Duration
}

// Resolve loads the config file, applies environment overrides, and fills in
// defaults.
func Resolve() (*ResolvedConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return ResolveWithHome(homeDir, os.Getenv)
}

// ResolveWithHome resolves config using a specified home directory and
// environment lookup. This is useful for testing.
func ResolveWithHome(homeDir string, getenv func(string) string) (*ResolvedConfig, error) {
	fileCfg, err := LoadFileConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		APIKey:      fileCfg.APIKey,
		TeamID:      fileCfg.TeamID,
		BaseURL:     cuekit.DefaultBaseURL,
		CachePath:   filepath.Join(homeDir, ConfigDir, "cache.db"),
		CacheMaxAge: DefaultCacheMaxAge,
	}

	if fileCfg.BaseURL != "" {
		resolved.BaseURL = fileCfg.BaseURL
	}
	if fileCfg.CachePath != "" {
		resolved.CachePath = fileCfg.CachePath
	}
	if fileCfg.CacheMaxAge != "" {
		maxAge, err := time.ParseDuration(fileCfg.CacheMaxAge)
		if err != nil {
			return nil, fmt.Errorf("invalid cache.max_age %q: %w", fileCfg.CacheMaxAge, err)
		}
		resolved.CacheMaxAge = maxAge
	}

	// Environment overrides the file.
	if v := getenv(EnvAPIKey); v != "" {
		resolved.APIKey = v
	}
	if v := getenv(EnvTeamID); v != "" {
		resolved.TeamID = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		resolved.BaseURL = v
	}

	return resolved, nil
}

// ClientOptions translates the resolved config into SDK client options.
func (c *ResolvedConfig) ClientOptions() []cuekit.ClientOption {
	opts := []cuekit.ClientOption{
		cuekit.WithAPIKey(c.APIKey),
		cuekit.WithBaseURL(c.BaseURL),
	}
	if c.TeamID != "" {
		opts = append(opts, cuekit.WithTeamID(c.TeamID))
	}
	return opts
}
