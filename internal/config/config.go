package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Economy   EconomyConfig   `yaml:"economy"`
	Operators []string        `yaml:"operators"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type     string `yaml:"type"` // memory | redis
	RedisURL string `yaml:"redis_url"`
}

// EconomyConfig holds the betting pool constants
type EconomyConfig struct {
	StartingBalance int `yaml:"starting_balance"`
	StakeUnit       int `yaml:"stake_unit"`
}

// RateLimitConfig bounds the inbound signal event rate
type RateLimitConfig struct {
	SignalsPerSecond float64 `yaml:"signals_per_second"`
	Burst            int     `yaml:"burst"`
}

// LogConfig controls log output
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config file and the .env file if present.
// Environment variables override file values. An empty path yields the
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	// Load .env if present (missing file is fine)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides overrides file values with environment variables
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BETPOOL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BETPOOL_STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("BETPOOL_REDIS_URL"); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := os.Getenv("BETPOOL_OPERATORS"); v != "" {
		cfg.Operators = cfg.Operators[:0]
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.Operators = append(cfg.Operators, id)
			}
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults fills required values that were not configured
func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "memory"
	}
	if cfg.Storage.RedisURL == "" {
		cfg.Storage.RedisURL = "redis://localhost:6379"
	}
	if cfg.Economy.StartingBalance <= 0 {
		cfg.Economy.StartingBalance = 20
	}
	if cfg.Economy.StakeUnit <= 0 {
		cfg.Economy.StakeUnit = 1
	}
	if cfg.RateLimit.SignalsPerSecond <= 0 {
		cfg.RateLimit.SignalsPerSecond = 25
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 50
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}
