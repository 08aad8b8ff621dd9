// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Event   EventConfig   `toml:"event"`
	User    UserConfig    `toml:"user"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// APIConfig holds the hosted backend settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"` // e.g., "https://api.runofshow.app"
	Token   string `toml:"token"`    // bearer token issued at sign-in
}

// EventConfig selects which event the planner opens.
type EventConfig struct {
	ID string `toml:"id"`
}

// UserConfig identifies the signed-in person when running against the
// local database. In hosted mode the identity comes from the API token.
type UserConfig struct {
	Email string `toml:"email"`
	Name  string `toml:"name"`
}

// StorageConfig holds local database settings for offline mode.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
	Local  bool   `toml:"local"` // true: sqlite only, never talk to the API
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Debug bool `toml:"debug"` // always-on debug logging, same as --debug
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.runofshow.app",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "runofshow.db"
	}
	return filepath.Join(home, ".local", "share", "runofshow", "runofshow.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "runofshow", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
// A .env file in the working directory is read first so tokens can live outside the config file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Missing .env is fine; env vars may come from the shell.
	_ = godotenv.Load()
	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUNOFSHOW_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("RUNOFSHOW_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("RUNOFSHOW_EVENT_ID"); v != "" {
		cfg.Event.ID = v
	}
	if v := os.Getenv("RUNOFSHOW_USER_EMAIL"); v != "" {
		cfg.User.Email = v
	}
	if v := os.Getenv("RUNOFSHOW_USER_NAME"); v != "" {
		cfg.User.Name = v
	}
	if v := os.Getenv("RUNOFSHOW_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("RUNOFSHOW_LOCAL"); v != "" {
		cfg.Storage.Local = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("RUNOFSHOW_DEBUG"); v != "" {
		cfg.UI.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Storage.Local {
		if c.API.BaseURL == "" {
			return errors.New("api base_url must be set unless storage.local is enabled")
		}
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api base_url must be an absolute URL, got %q", c.API.BaseURL)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
