// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server process needs from its environment.
type Config struct {
	// Port the gRPC server listens on
	Port int `env:"FORGE_PORT" envDefault:"50051"`

	// Redis connection
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPoolSize    int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdle     int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	RedisMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`

	// RulesCacheTTL bounds staleness of the cached rules bundle.
	// Zero caches until explicit invalidation.
	RulesCacheTTL time.Duration `env:"RULES_CACHE_TTL" envDefault:"5m"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
