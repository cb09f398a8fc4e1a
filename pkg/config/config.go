package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

const (
	defaultConfigPath = "config/config.yaml"

	DefaultNotionBaseURL    = "https://api.notion.com/v1"
	DefaultNotionVersion    = "2022-06-28"
	DefaultSearchBaseURL    = "https://www.googleapis.com/customsearch/v1"
	DefaultUpstreamTimeout  = 30 * time.Second
	DefaultIdleThreshold    = 1200 * time.Second
	DefaultIdleCheck        = 10 * time.Second
	DefaultIdleSleep        = 60 * time.Second
	DefaultSnapshotInterval = 30 * time.Second
)

// Config global configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Notion NotionConfig `yaml:"notion"`
	Search SearchConfig `yaml:"search"`
	Idle   IdleConfig   `yaml:"idle"`
	Redis  RedisConfig  `yaml:"redis"`
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Port   int    `yaml:"port"`
	Mode   string `yaml:"mode"`    // debug, release
	APIKey string `yaml:"api_key"` // optional, if empty, auth is disabled
}

// NotionConfig Notion database configuration
type NotionConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`     // NOTION_API_KEY
	DatabaseID string        `yaml:"database_id"` // DATABASE_ID
	Version    string        `yaml:"version"`     // Notion-Version header
	Timeout    time.Duration `yaml:"timeout"`
}

// SearchConfig Google Custom Search configuration
type SearchConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`   // GOOGLE_API_KEY
	EngineID string        `yaml:"engine_id"` // GOOGLE_SEARCH_ENGINE_ID, sent as cx when set
	Timeout  time.Duration `yaml:"timeout"`
}

// IdleConfig idle monitor configuration
type IdleConfig struct {
	Threshold     time.Duration `yaml:"threshold"`      // idle time before the sleep log line
	CheckInterval time.Duration `yaml:"check_interval"` // how often idle time is checked
	SleepDuration time.Duration `yaml:"sleep_duration"` // how long the monitor holds after going to sleep
}

// RedisConfig Redis configuration (optional, empty addr disables activity persistence)
type RedisConfig struct {
	Addr             string        `yaml:"addr"`
	Password         string        `yaml:"password"`
	DB               int           `yaml:"db"`
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

// Init initializes configuration
func Init() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		return err
	}

	GlobalConfig = cfg
	return nil
}

// Load reads the YAML file at path, applies environment overrides and fills
// defaults. A missing file is not an error: the service can run from the
// environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	applyEnvOverrides(&cfg)
	validateAndApplyDefaults(&cfg)
	return &cfg, nil
}

// applyEnvOverrides lets environment variables win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NOTION_API_KEY"); v != "" {
		cfg.Notion.APIKey = v
	}
	if v := os.Getenv("DATABASE_ID"); v != "" {
		cfg.Notion.DatabaseID = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := os.Getenv("GOOGLE_SEARCH_ENGINE_ID"); v != "" {
		cfg.Search.EngineID = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

func validateAndApplyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}

	if cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = DefaultNotionBaseURL
	}
	if cfg.Notion.Version == "" {
		cfg.Notion.Version = DefaultNotionVersion
	}
	if cfg.Notion.Timeout <= 0 {
		cfg.Notion.Timeout = DefaultUpstreamTimeout
	}

	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = DefaultSearchBaseURL
	}
	if cfg.Search.Timeout <= 0 {
		cfg.Search.Timeout = DefaultUpstreamTimeout
	}

	if cfg.Idle.Threshold <= 0 {
		cfg.Idle.Threshold = DefaultIdleThreshold
	}
	if cfg.Idle.CheckInterval <= 0 {
		cfg.Idle.CheckInterval = DefaultIdleCheck
	}
	if cfg.Idle.SleepDuration <= 0 {
		cfg.Idle.SleepDuration = DefaultIdleSleep
	}

	if cfg.Redis.SnapshotInterval <= 0 {
		cfg.Redis.SnapshotInterval = DefaultSnapshotInterval
	}

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Output == "" {
		cfg.Logger.Output = "console"
	}
}
