package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, homeDir, content string) {
	t.Helper()
	dir := filepath.Join(homeDir, ConfigDir)
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("failed to create %s directory: %v", ConfigDir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
}

func TestFileConfig_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[api]
key = "pk_file_token"
team_id = "9000"
base_url = "https://staging.example.com/api/v2"

[cache]
path = "/tmp/cuekit-cache.db"
max_age = "10m"
`)

	cfg, err := LoadFileConfigFromDir(tmpDir)
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
	if cfg.CachePath != "/tmp/cuekit-cache.db" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
	if cfg.CacheMaxAge != "10m" {
		t.Errorf("CacheMaxAge = %q", cfg.CacheMaxAge)
	}
}

func TestFileConfig_NotExists(t *testing.T) {
	cfg, err := LoadFileConfigFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error when config doesn't exist, got: %v", err)
	}
	if cfg.APIKey != "" || cfg.TeamID != "" || cfg.BaseURL != "" {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `this is not valid toml {{{`)

	if _, err := LoadFileConfigFromDir(tmpDir); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestFileConfig_Partial(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[api]
key = "pk_file_token"
`)

	cfg, err := LoadFileConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "pk_file_token" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.TeamID != "" {
		t.Errorf("expected empty TeamID, got %q", cfg.TeamID)
	}
}
