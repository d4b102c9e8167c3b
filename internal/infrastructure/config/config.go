package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/campushub/event-hub/pkg/logger"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port      string        `env:"PORT,      default=3001"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	StoreDriver  string        `env:"STORE_DRIVER,  default=mongo"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT, default=10s"`

	// EventMutationRoles restricts event create/update/delete to these roles.
	// Empty lets any authenticated caller mutate events.
	EventMutationRoles []string `env:"EVENT_MUTATION_ROLES"`
	ActivityCapacity   int      `env:"ACTIVITY_CAPACITY,  default=100"`
	CORSAllowOrigins   []string `env:"CORS_ALLOW_ORIGINS, default=*"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=campus_event_hub"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED,   default=true"`
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	DB       int           `env:"REDIS_DB,        default=0"`
	GuardTTL time.Duration `env:"REDIS_GUARD_TTL, default=10s"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.StoreDriver != StoreMongo && c.StoreDriver != StoreMemory {
		return fmt.Errorf("config: STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreDriver)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if c.ActivityCapacity <= 0 {
		return fmt.Errorf("config: ACTIVITY_CAPACITY must be positive")
	}
	return nil
}

// Load reads configuration from the given lookuper (the process environment
// when nil) using go-envconfig.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad reads configuration from environment variables and panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background(), nil)
	if err != nil {
		panic(err)
	}
	return cfg
}
