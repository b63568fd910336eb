package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Auth modes. Basic verifies credentials against the store and keeps at most
// one active session per username; token is fully stateless bearer auth.
const (
	AuthModeBasic = "basic"
	AuthModeToken = "token"
)

// Session store backends for basic mode.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AuthMode selects the authentication pipeline: basic | token.
	AuthMode string `env:"AUTH_MODE, default=token"`

	// JWTSecret signs tokens in token mode. Leave empty to generate a random
	// per-process key: tokens then become unverifiable after a restart.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the token lifetime. The value is deliberately
	// configuration, not a constant baked into the token service.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=30m"`

	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// SessionStore picks the basic-mode session backend: memory | redis.
	SessionStore string        `env:"SESSION_STORE, default=memory"`
	SessionTTL   time.Duration `env:"SESSION_TTL,   default=12h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=product_auth"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
