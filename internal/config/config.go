package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RateLimitEnabled turns on per-client request limiting. Off by
	// default; the limiter middleware is a no-op pass-through when false.
	RateLimitEnabled bool `mapstructure:"rate_limit_enabled"`

	// RateLimitPerMinute is the sustained request budget per client when
	// rate limiting is enabled.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
//
// Changing JWTSecret or TokenLifetimeMinutes does not invalidate tokens
// already issued under previous values; those remain valid until they
// naturally expire.
type AuthConfig struct {
	// JWTSecret signs and verifies tokens. Must be at least 32 characters.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is how long issued tokens stay valid.
	// Defaults to 10080 (7 days).
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the work factor for password hashing. Defaults to the
	// bcrypt library default when zero.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}
