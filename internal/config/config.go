package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	Dir string `env:"CHARSHEET_DIR" envDefault:"."`
	Log LogConfig
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `env:"CHARSHEET_LOG_LEVEL" envDefault:"info"`
	Format string `env:"CHARSHEET_LOG_FORMAT" envDefault:"text"` // text or json
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Dir == "" {
		return nil, fmt.Errorf("CHARSHEET_DIR cannot be empty")
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("CHARSHEET_LOG_LEVEL: %w", err)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return nil, fmt.Errorf("CHARSHEET_LOG_FORMAT must be text or json, got %q", cfg.Log.Format)
	}

	return cfg, nil
}

// NewLogger builds the logger described by the config
func (c LogConfig) NewLogger() *logrus.Logger {
	l := logrus.New()
	if c.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}
