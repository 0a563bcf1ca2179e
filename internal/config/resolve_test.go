package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

func noEnv(string) string { return "" }

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestResolve_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := ResolveWithHome(tmpDir, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != cuekit.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.CacheMaxAge != DefaultCacheMaxAge {
		t.Errorf("CacheMaxAge = %v, want %v", cfg.CacheMaxAge, DefaultCacheMaxAge)
	}
	wantCache := filepath.Join(tmpDir, ConfigDir, "cache.db")
	if cfg.CachePath != wantCache {
		t.Errorf("CachePath = %q, want %q", cfg.CachePath, wantCache)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected empty APIKey, got %q", cfg.APIKey)
	}
}

func TestResolve_FileValues(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[api]
key = "pk_file_token"
team_id = "9000"
base_url = "https://staging.example.com/api/v2"

[cache]
max_age = "1h"
`)

	cfg, err := ResolveWithHome(tmpDir, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "pk_file_token" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.TeamID != "9000" {
		t.Errorf("TeamID = %q", cfg.TeamID)
	}
	if cfg.BaseURL != "https://staging.example.com/api/v2" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.CacheMaxAge != time.Hour {
		t.Errorf("CacheMaxAge = %v", cfg.CacheMaxAge)
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[api]
key = "pk_file_token"
team_id = "9000"
`)

	cfg, err := ResolveWithHome(tmpDir, envFrom(map[string]string{
		EnvAPIKey:  "pk_env_token",
		EnvBaseURL: "http://localhost:8080",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "pk_env_token" {
		t.Errorf("APIKey = %q, want env value", cfg.APIKey)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
	// Not overridden: file value survives.
	if cfg.TeamID != "9000" {
		t.Errorf("TeamID = %q, want file value", cfg.TeamID)
	}
}

func TestResolve_InvalidMaxAge(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[cache]
max_age = "soon"
`)

	if _, err := ResolveWithHome(tmpDir, noEnv); err == nil {
		t.Fatal("expected error for invalid max_age")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &ResolvedConfig{
		APIKey:  "pk_test",
		BaseURL: "http://localhost:8080",
	}
	if n := len(cfg.ClientOptions()); n != 2 {
		t.Errorf("expected 2 options without team ID, got %d", n)
	}

	cfg.TeamID = "9000"
	if n := len(cfg.ClientOptions()); n != 3 {
		t.Errorf("expected 3 options with team ID, got %d", n)
	}
}
