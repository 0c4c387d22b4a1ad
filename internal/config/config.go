// Package config loads application configuration from a YAML file with
// environment-variable overrides. The loaded Config is passed down through
// constructors; nothing in this package is a process-wide singleton.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Mailbox  MailboxConfig  `yaml:"mailbox"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection and migration settings.
type DatabaseConfig struct {
	URL           string `yaml:"url"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// LoggingConfig holds log sink settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	RedactPII bool   `yaml:"redact_pii"`
}

// MailboxConfig holds IMAP fetch settings.
type MailboxConfig struct {
	FetchLimit int `yaml:"fetch_limit"`
}

// Load reads configuration from a YAML file and applies defaults. A missing
// file is not an error; everything has a default or an env override.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Database.MigrationsDir == "" {
		cfg.Database.MigrationsDir = "migrations"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Mailbox.FetchLimit == 0 {
		cfg.Mailbox.FetchLimit = 50
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// A .env file is honored when present.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
	return cfg, nil
}
