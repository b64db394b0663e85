package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Backend  BackendConfig  `toml:"backend"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Player   PlayerConfig   `toml:"player"`
	Search   SearchConfig   `toml:"search"`
}

// BackendConfig contains connection settings for the hosted Supabase backend.
type BackendConfig struct {
	URL         string  `toml:"url"`
	AnonKey     string  `toml:"anon_key"`
	AccessToken string  `toml:"access_token"`
	UserID      string  `toml:"user_id"`
	RateLimit   float64 `toml:"rate_limit"`
}

// StorageConfig names the object storage buckets holding song and image assets.
type StorageConfig struct {
	SongBucket       string `toml:"song_bucket"`
	ImageBucket      string `toml:"image_bucket"`
	PlaceholderImage string `toml:"placeholder_image"`
}

// DatabaseConfig contains local database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PlayerConfig contains playback defaults.
type PlayerConfig struct {
	Volume float64 `toml:"volume"`
}

// SearchConfig contains search input settings.
type SearchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks that the settings required to reach the backend are present.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("%w: backend.url is required", ErrInvalidConfig)
	}
	if c.Backend.AnonKey == "" {
		return fmt.Errorf("%w: backend.anon_key is required", ErrMissingAPIKey)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
