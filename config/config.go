// Package config loads assistant configuration with multi-source priority:
// environment variables (JAPABOT_ prefix), then an optional YAML config
// file, then defaults. The loaded Config is constructed once at process
// start and handed to constructors explicitly; nothing in this module reads
// configuration ambiently.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidCacheTTL indicates a negative cache TTL.
	ErrInvalidCacheTTL = errors.New("invalid cache ttl")
)

// ModelConfig configures the completion model provider. An empty APIKey is
// valid: the engine then answers every request with its unavailable-service
// message instead of failing at startup.
type ModelConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Name        string  `mapstructure:"name"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// CacheConfig configures the response cache. An empty RedisAddr selects the
// in-process cache.
type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// DatabaseConfig configures the document store and usage log backend. An
// empty URL selects the in-memory implementations.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ChatConfig bounds per-turn context gathering.
type ChatConfig struct {
	MaxDocuments      int `mapstructure:"max_documents"`
	HistoryWindow     int `mapstructure:"history_window"`
	HistoryScanWindow int `mapstructure:"history_scan_window"`
}

// Config is the root configuration.
type Config struct {
	Model    ModelConfig    `mapstructure:"model"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
	Chat     ChatConfig     `mapstructure:"chat"`
	LogLevel string         `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so AutomaticEnv can bind it during Unmarshal.
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.base_url", "")
	v.SetDefault("model.name", "deepseek-chat")
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.max_tokens", 1000)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("database.url", "")
	v.SetDefault("chat.max_documents", 5)
	v.SetDefault("chat.history_window", 4)
	v.SetDefault("chat.history_scan_window", 6)
	v.SetDefault("log_level", "info")
}

// Load reads configuration from the environment and, when path is not
// empty, a YAML file. A missing file at an explicit path is an error;
// environment variables always win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("JAPABOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("%w: %v (must be between 0 and 2)", ErrInvalidTemperature, c.Model.Temperature)
	}
	if c.Model.MaxTokens <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidMaxTokens, c.Model.MaxTokens)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: %v (must not be negative)", ErrInvalidCacheTTL, c.Cache.TTL)
	}
	return nil
}
