package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/weapon-deck-api/internal/config"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.LookaheadWindow)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Empty(t, cfg.CatalogPath)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WEAPON_DECK_GRPC_PORT", "6000")
	t.Setenv("WEAPON_DECK_LOG_LEVEL", "debug")
	t.Setenv("WEAPON_DECK_REDIS_MASTER_NAME", "decks")
	t.Setenv("WEAPON_DECK_REDIS_SENTINELS", "s1:26379,s2:26379")
	t.Setenv("WEAPON_DECK_SESSION_TTL", "12h")
	t.Setenv("WEAPON_DECK_CATALOG_PATH", "/etc/weapon-deck/catalog.toml")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"s1:26379", "s2:26379"}, cfg.RedisSentinels)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/etc/weapon-deck/catalog.toml", cfg.CatalogPath)
}

func TestLoadRejectsUnparsableValues(t *testing.T) {
	t.Setenv("WEAPON_DECK_SESSION_TTL", "three days")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			GRPCPort:         50051,
			ShutdownTimeout:  time.Second,
			LogLevel:         "info",
			RedisAddr:        "localhost:6379",
			RedisPoolSize:    1,
			SQLitePath:       "data/test.db",
			TraceSampleRatio: 1,
		}
	}

	testCases := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{name: "port out of range", modify: func(c *config.Config) { c.GRPCPort = 70000 }, field: "grpc_port"},
		{name: "unknown log level", modify: func(c *config.Config) { c.LogLevel = "loud" }, field: "log_level"},
		{name: "no redis address", modify: func(c *config.Config) { c.RedisAddr = "" }, field: "redis_addr"},
		{name: "master without sentinels", modify: func(c *config.Config) { c.RedisMasterName = "decks" }, field: "redis_sentinels"},
		{name: "empty pool", modify: func(c *config.Config) { c.RedisPoolSize = 0 }, field: "redis_pool_size"},
		{name: "no sqlite path", modify: func(c *config.Config) { c.SQLitePath = "" }, field: "sqlite_path"},
		{name: "negative lookahead", modify: func(c *config.Config) { c.LookaheadWindow = -1 }, field: "shuffle_lookahead"},
		{name: "sample ratio above one", modify: func(c *config.Config) { c.TraceSampleRatio = 1.5 }, field: "trace_sample_ratio"},
	}

	require.NoError(t, valid().Validate())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}
