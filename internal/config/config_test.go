package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "https://api.runofshow.app" {
		t.Errorf("expected default base_url, got %s", cfg.API.BaseURL)
	}
	if cfg.Storage.Local {
		t.Error("expected local mode off by default")
	}
	if cfg.Storage.DBPath == "" {
		t.Error("expected a default db_path")
	}
	if cfg.UI.Debug {
		t.Error("expected debug logging off by default")
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.API.BaseURL != "https://api.runofshow.app" {
		t.Errorf("expected default base_url, got %s", cfg.API.BaseURL)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[api]
base_url = "https://staging.runofshow.app"
token = "tok-123"

[event]
id = "evt-42"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://staging.runofshow.app" {
		t.Errorf("expected staging base_url, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %s", cfg.API.Token)
	}
	if cfg.Event.ID != "evt-42" {
		t.Errorf("expected event id evt-42, got %s", cfg.Event.ID)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[api]
base_url = "https://staging.runofshow.app"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("RUNOFSHOW_API_TOKEN", "tok-env")
	t.Setenv("RUNOFSHOW_EVENT_ID", "evt-env")
	t.Setenv("RUNOFSHOW_LOCAL", "true")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.Token != "tok-env" {
		t.Errorf("expected env token to win, got %s", cfg.API.Token)
	}
	if cfg.Event.ID != "evt-env" {
		t.Errorf("expected env event id to win, got %s", cfg.Event.ID)
	}
	if !cfg.Storage.Local {
		t.Error("expected RUNOFSHOW_LOCAL=true to enable local mode")
	}
	// File value survives where no env override exists.
	if cfg.API.BaseURL != "https://staging.runofshow.app" {
		t.Errorf("expected file base_url to survive, got %s", cfg.API.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"relative base_url", func(c *Config) { c.API.BaseURL = "not-a-url" }, true},
		{"empty base_url in local mode", func(c *Config) {
			c.API.BaseURL = ""
			c.Storage.Local = true
		}, false},
		{"empty db_path", func(c *Config) { c.Storage.DBPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Event.ID = "evt-save"
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Event.ID != "evt-save" {
		t.Errorf("expected round-tripped event id, got %s", loaded.Event.ID)
	}
}
