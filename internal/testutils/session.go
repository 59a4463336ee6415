package testutils

import (
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/sessionlock"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
)

// SessionEnv is a session store backed by miniredis
type SessionEnv struct {
	Sessions   session.Service
	Repository sessionstate.Repository
	Bus        events.EventBus
	Redis      *miniredis.Miniredis
}

// CreateTestSessions wires a session store over an in-memory Redis and a
// fresh event bus. Everything is torn down when the test ends.
func CreateTestSessions(t *testing.T, catalog *weapons.CatalogHandle) *SessionEnv {
	t.Helper()

	client, mr, cleanup := CreateTestRedis(t)
	t.Cleanup(cleanup)

	repo, err := sessionstate.NewRedisRepository(&sessionstate.Config{Client: client})
	require.NoError(t, err)

	bus := events.NewBus()
	sessions, err := session.NewStore(&session.Config{
		Repository: repo,
		Catalog:    catalog,
		Locker:     sessionlock.New(),
		EventBus:   bus,
	})
	require.NoError(t, err)

	return &SessionEnv{
		Sessions:   sessions,
		Repository: repo,
		Bus:        bus,
		Redis:      mr,
	}
}
