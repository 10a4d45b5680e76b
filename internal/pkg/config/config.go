package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	StoreDriver     string        `env:"STORE_DRIVER,     default=mongo"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`

	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cake_delivery"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type JWTConfig struct {
	SigningKey                 string `env:"JWT_SIGNING_KEY, required"`
	Issuer                     string `env:"JWT_ISSUER,      default=cake-delivery-api"`
	Audience                   string `env:"JWT_AUDIENCE,    default=cake-delivery-clients"`
	AccessTokenLifetimeMinutes int    `env:"JWT_ACCESS_TOKEN_LIFETIME_MINUTES, default=60"`
	RefreshTokenLifetimeDays   int    `env:"JWT_REFRESH_TOKEN_LIFETIME_DAYS,   default=7"`
}

// AuthConfig covers login throttling and the optional bootstrap admin account.
type AuthConfig struct {
	LoginMaxAttempts    int           `env:"LOGIN_MAX_ATTEMPTS,    default=5"`
	LoginThrottleWindow time.Duration `env:"LOGIN_THROTTLE_WINDOW, default=15m"`
	AdminEmail          string        `env:"ADMIN_EMAIL"`
	AdminPassword       string        `env:"ADMIN_PASSWORD"`
}

type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE, default=300"`
}

// AccessTokenLifetime converts the configured minutes into a duration.
func (j JWTConfig) AccessTokenLifetime() time.Duration {
	return time.Duration(j.AccessTokenLifetimeMinutes) * time.Minute
}

// RefreshTokenLifetime converts the configured days into a duration.
func (j JWTConfig) RefreshTokenLifetime() time.Duration {
	return time.Duration(j.RefreshTokenLifetimeDays) * 24 * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from an arbitrary lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreDriver)
	}
	if c.JWT.AccessTokenLifetimeMinutes <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_LIFETIME_MINUTES must be positive")
	}
	if c.JWT.RefreshTokenLifetimeDays <= 0 {
		return fmt.Errorf("JWT_REFRESH_TOKEN_LIFETIME_DAYS must be positive")
	}
	if c.Auth.LoginMaxAttempts <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be positive")
	}
	if (c.Auth.AdminEmail == "") != (c.Auth.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}
