package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/redis"
)

func TestNewRequiresConfig(t *testing.T) {
	_, err := redis.New(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewSingleNodePings(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.New(&redis.Config{Addr: mr.Addr(), PoolSize: 2})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    redis.Config
		fields []string
	}{
		{name: "single node", cfg: redis.Config{Addr: "localhost:6379"}},
		{name: "sentinel ignores addr", cfg: redis.Config{MasterName: "primary", Sentinels: []string{"localhost:26379"}}},
		{name: "no addr", cfg: redis.Config{}, fields: []string{"addr"}},
		{name: "master without sentinels", cfg: redis.Config{MasterName: "primary"}, fields: []string{"sentinels"}},
		{name: "negative pool", cfg: redis.Config{Addr: "localhost:6379", PoolSize: -1}, fields: []string{"pool_size"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if len(tc.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
			require.True(t, ok)
			for _, f := range tc.fields {
				assert.Contains(t, fields, f)
			}
		})
	}
}
