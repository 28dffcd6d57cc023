package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig

	// AuditWorkers sizes the async audit dispatcher.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

type JWTConfig struct {
	// Secret signs and verifies tokens. Loaded once at startup; never
	// rotated within a process lifetime.
	Secret   string `env:"JWT_SECRET"`
	Issuer   string `env:"JWT_ISSUER,   default=directory-api"`
	Audience string `env:"JWT_AUDIENCE, default=app"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=directory"`
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
