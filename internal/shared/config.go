package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvPrefix is prepended to every environment override (e.g. TUNELIST_API_BASE_URL).
const EnvPrefix = "TUNELIST_"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api" envPrefix:"API_"`
	Database DatabaseConfig `toml:"database" envPrefix:"DATABASE_"`
	Session  SessionConfig  `toml:"session" envPrefix:"SESSION_"`
	Cache    CacheConfig    `toml:"cache" envPrefix:"CACHE_"`
	UI       UIConfig       `toml:"ui" envPrefix:"UI_"`
}

// APIConfig contains remote playlist API settings.
type APIConfig struct {
	BaseURL        string  `toml:"base_url" env:"BASE_URL"`
	TimeoutSeconds int     `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	RateLimit      float64 `toml:"rate_limit" env:"RATE_LIMIT"` // requests per second, 0 disables
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"PATH"`
	MaxOpenConns int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
}

// SessionConfig controls what happens to stored credentials at startup.
type SessionConfig struct {
	// ClearOnReject removes the stored token when the server explicitly rejects it.
	ClearOnReject bool `toml:"clear_on_reject" env:"CLEAR_ON_REJECT"`
}

// CacheConfig contains in-memory music cache settings.
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds" env:"TTL_SECONDS"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	Locale  string `toml:"locale" env:"LOCALE"`
	LogPath string `toml:"log_path" env:"LOG_PATH"`
}

// Timeout returns the per-request timeout, falling back to 10 seconds.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TTL returns the music cache lifetime; zero disables caching.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// Validate checks the fields required to reach the API.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("%w: api.rate_limit must not be negative", ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides config fields from TUNELIST_* environment variables.
func ApplyEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
