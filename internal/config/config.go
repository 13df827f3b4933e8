// Package config defines the application configuration, populated from
// viper (config file, environment variables, defaults).
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/russellbomer/domsift/internal/fetcher"
	"github.com/russellbomer/domsift/internal/logger"
)

// Config is the root application configuration.
type Config struct {
	App     AppConfig      `yaml:"app"`
	Logger  logger.Config  `yaml:"logger"`
	Fetcher fetcher.Config `yaml:"fetcher"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

// SetDefaults registers default configuration values with viper.
func SetDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "domsift",
		"environment": "production",
		"debug":       false,
	})
	viper.SetDefault("logger", map[string]any{
		"level":        logger.DefaultLevel,
		"encoding":     logger.DefaultEncoding,
		"development":  false,
		"output_paths": logger.DefaultOutputPaths,
	})
	viper.SetDefault("fetcher", map[string]any{
		"user_agent":    fetcher.DefaultUserAgent,
		"timeout":       fetcher.DefaultTimeout.String(),
		"delay":         fetcher.DefaultDelay.String(),
		"max_body_size": fetcher.DefaultMaxBodySize,
	})
}

// FromViper builds a Config from the current viper state.
func FromViper() *Config {
	cfg := &Config{
		App: AppConfig{
			Name:        viper.GetString("app.name"),
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
		},
		Logger: logger.Config{
			Level:       viper.GetString("logger.level"),
			Encoding:    viper.GetString("logger.encoding"),
			Development: viper.GetBool("logger.development"),
			OutputPaths: viper.GetStringSlice("logger.output_paths"),
		},
		Fetcher: fetcher.Config{
			UserAgent:   viper.GetString("fetcher.user_agent"),
			Timeout:     viper.GetDuration("fetcher.timeout"),
			Delay:       viper.GetDuration("fetcher.delay"),
			MaxBodySize: viper.GetInt("fetcher.max_body_size"),
		},
	}
	if cfg.App.Debug {
		cfg.Logger.Level = "debug"
	}
	return cfg
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.Logger.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logger encoding %q", c.Logger.Encoding)
	}
	if c.Fetcher.Timeout < 0 {
		return fmt.Errorf("fetcher timeout must not be negative")
	}
	if c.Fetcher.MaxBodySize < 0 {
		return fmt.Errorf("fetcher max body size must not be negative")
	}
	return nil
}
