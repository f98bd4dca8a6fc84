package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. SHOP_DATABASE_URL for database.url.
const EnvPrefix = "SHOP"

// Default values applied before the config file and environment are read.
const (
	DefaultLogLevel               = "info"
	DefaultMaxOpenConns           = 25
	DefaultMaxIdleConns           = 25
	DefaultConnMaxLifetimeMinutes = 5
	DefaultPageSize               = 10
	DefaultMaxPageSize            = 100
)

// Load configuration from defaults, an optional config file, and environment
// variables. Environment variables take precedence over values from config files.
//
// When configPath is empty, a file named config.yaml in the working directory is
// used if present. An explicit configPath must exist.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", DefaultMaxOpenConns)
	v.SetDefault("database.max_idle_conns", DefaultMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime_minutes", DefaultConnMaxLifetimeMinutes)
	v.SetDefault("pagination.default_page_size", DefaultPageSize)
	v.SetDefault("pagination.max_page_size", DefaultMaxPageSize)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
