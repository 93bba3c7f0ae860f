package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default configuration values applied when neither the environment nor a
// config file provides a setting.
const (
	defaultPort                 = 8080
	defaultLogLevel             = "info"
	defaultTokenLifetimeMinutes = 10080 // 7 days
	defaultRateLimitPerMinute   = 120
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files and
// use the SCRIBE_ prefix with underscores for nesting, e.g.
// SCRIBE_AUTH_JWT_SECRET maps to auth.jwt_secret.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("server.rate_limit_enabled", false)
	v.SetDefault("server.rate_limit_per_minute", defaultRateLimitPerMinute)
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)
	v.SetDefault("auth.bcrypt_cost", 0)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables and defaults apply.
	}

	// Environment variables take precedence
	v.SetEnvPrefix("SCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so keys
	// without defaults need explicit binds for Unmarshal to see them.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
