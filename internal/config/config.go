// Package config loads server settings from WEAPON_DECK_* environment variables
package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

// Config holds everything the server needs at startup
type Config struct {
	GRPCPort        int           `env:"WEAPON_DECK_GRPC_PORT" envDefault:"50051"`
	ShutdownTimeout time.Duration `env:"WEAPON_DECK_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel string `env:"WEAPON_DECK_LOG_LEVEL" envDefault:"info"`

	RedisAddr string `env:"WEAPON_DECK_REDIS_ADDR" envDefault:"localhost:6379"`
	// RedisMasterName switches to a sentinel client when set
	RedisMasterName string   `env:"WEAPON_DECK_REDIS_MASTER_NAME"`
	RedisSentinels  []string `env:"WEAPON_DECK_REDIS_SENTINELS" envSeparator:","`
	RedisPoolSize   int      `env:"WEAPON_DECK_REDIS_POOL_SIZE" envDefault:"10"`
	RedisDB         int      `env:"WEAPON_DECK_REDIS_DB" envDefault:"0"`
	RedisTLS        bool     `env:"WEAPON_DECK_REDIS_TLS" envDefault:"false"`

	SQLitePath string `env:"WEAPON_DECK_SQLITE_PATH" envDefault:"data/weapon-deck.db"`

	// CatalogPath is a TOML catalog file; empty uses the built-in catalog
	CatalogPath string `env:"WEAPON_DECK_CATALOG_PATH"`

	SessionTTL      time.Duration `env:"WEAPON_DECK_SESSION_TTL" envDefault:"72h"`
	LookaheadWindow int           `env:"WEAPON_DECK_SHUFFLE_LOOKAHEAD" envDefault:"10"`

	// OTLPEndpoint is an OTLP/HTTP URL; empty disables trace export
	OTLPEndpoint     string  `env:"WEAPON_DECK_OTLP_ENDPOINT"`
	TraceSampleRatio float64 `env:"WEAPON_DECK_TRACE_SAMPLE_RATIO" envDefault:"1"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and required settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	vb.Range("grpc_port", c.GRPCPort, 1, 65535)
	if c.ShutdownTimeout <= 0 {
		vb.Field("shutdown_timeout", "must be positive")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}
	if c.RedisMasterName == "" && c.RedisAddr == "" {
		vb.RequiredField("redis_addr")
	}
	if c.RedisMasterName != "" && len(c.RedisSentinels) == 0 {
		vb.Field("redis_sentinels", "at least one sentinel is required with a master name")
	}
	if c.RedisPoolSize < 1 {
		vb.Field("redis_pool_size", "must be at least 1")
	}
	if c.SQLitePath == "" {
		vb.RequiredField("sqlite_path")
	}
	if c.SessionTTL < 0 {
		vb.Field("session_ttl", "must not be negative")
	}
	if c.LookaheadWindow < 0 {
		vb.Field("shuffle_lookahead", "must not be negative")
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		vb.Field("trace_sample_ratio", "must be between 0 and 1")
	}

	return vb.Build()
}

// SlogLevel is the configured log level; Validate has already checked it
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
