// Package testutils provides utilities for testing, including Redis and
// SQLite test helpers
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/weapon-deck-api/internal/redis"
)

// CreateTestRedis creates an in-memory Redis client and exposes the server
// so tests can inspect keys or fast-forward TTLs
func CreateTestRedis(t *testing.T) (redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.New(&redis.Config{Addr: mr.Addr()})
	require.NoError(t, err, "failed to create redis client")

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return client, mr, cleanup
}
