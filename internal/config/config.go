package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents configuration data for the dashboard service.
type Config struct {
	Addr                 string `yaml:"addr"`
	LogDirectory         string `yaml:"log_directory"`
	ScreenshotsDirectory string `yaml:"screenshots_directory"`
	DashboardPath        string `yaml:"dashboard_path"`
	DataDirectory        string `yaml:"data_directory"`
	ScanIntervalSeconds  int    `yaml:"scan_interval_seconds"`
	ScanParallelism      int    `yaml:"scan_parallelism"`
	PushIntervalSeconds  int    `yaml:"push_interval_seconds"`
	HistoryLimit         int    `yaml:"history_limit"`
	Blob                 Blob   `yaml:"blob"`
	Log                  Log    `yaml:"log"`
}

// Blob configures the remote Azure Blob Storage source.
type Blob struct {
	Enabled          bool   `yaml:"enabled"`
	ConnectionString string `yaml:"connection_string"`
	Container        string `yaml:"container"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

// Log configures process logging.
type Log struct {
	Level      string `yaml:"level"`
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns sensible defaults in case no configuration file is provided.
func DefaultConfig() Config {
	return Config{
		Addr:                ":5000",
		LogDirectory:        "logs",
		DataDirectory:       filepath.Join(".dist", "data"),
		ScanIntervalSeconds: 60,
		ScanParallelism:     4,
		PushIntervalSeconds: 5,
		HistoryLimit:        200,
		Blob: Blob{
			Container:      "test-logs",
			TimeoutSeconds: 15,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load reads configuration from yaml file. Missing files fall back to defaults.
// Environment overrides are applied afterwards.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file. A missing default .env is ignored.
func LoadEnvFile(file string) error {
	if file == "" {
		file = ".env"
	}
	if err := godotenv.Load(file); err != nil {
		if file == ".env" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", file, err)
	}
	return nil
}

// Validate checks settings that cannot be defaulted.
func (c Config) Validate() error {
	if c.LogDirectory == "" {
		return errors.New("log_directory is required")
	}
	if c.Blob.Enabled {
		if c.Blob.ConnectionString == "" {
			return errors.New("blob.connection_string is required when blob is enabled")
		}
		if c.Blob.Container == "" {
			return errors.New("blob.container is required when blob is enabled")
		}
	}
	return nil
}

func normalize(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.DataDirectory == "" {
		cfg.DataDirectory = defaults.DataDirectory
	}
	if cfg.ScanIntervalSeconds <= 0 {
		cfg.ScanIntervalSeconds = defaults.ScanIntervalSeconds
	}
	if cfg.ScanParallelism <= 0 {
		cfg.ScanParallelism = defaults.ScanParallelism
	}
	if cfg.PushIntervalSeconds <= 0 {
		cfg.PushIntervalSeconds = defaults.PushIntervalSeconds
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaults.HistoryLimit
	}
	if cfg.Blob.TimeoutSeconds <= 0 {
		cfg.Blob.TimeoutSeconds = defaults.Blob.TimeoutSeconds
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Addr, "LOGDASH_ADDR")
	setString(&cfg.LogDirectory, "LOGDASH_LOG_DIRECTORY")
	setString(&cfg.ScreenshotsDirectory, "LOGDASH_SCREENSHOTS_DIRECTORY")
	setString(&cfg.DataDirectory, "LOGDASH_DATA_DIRECTORY")
	setString(&cfg.Blob.ConnectionString, "AZURE_STORAGE_CONNECTION_STRING")
	setString(&cfg.Blob.ConnectionString, "LOGDASH_BLOB_CONNECTION_STRING")
	setString(&cfg.Blob.Container, "LOGDASH_BLOB_CONTAINER")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	if raw := os.Getenv("LOGDASH_BLOB_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid LOGDASH_BLOB_ENABLED: %w", err)
		}
		cfg.Blob.Enabled = enabled
	}
	if raw := os.Getenv("LOGDASH_SCAN_INTERVAL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid LOGDASH_SCAN_INTERVAL_SECONDS: %w", err)
		}
		cfg.ScanIntervalSeconds = seconds
	}
	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}
