package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/weapon-deck-api/internal/storage/sqlite"
)

// CreateTestSQLite opens a migrated database in a temp directory. It is
// closed when the test ends.
func CreateTestSQLite(t *testing.T) *sqlite.DB {
	t.Helper()

	cfg := sqlite.DefaultConfig(filepath.Join(t.TempDir(), "weapon-deck.db"))
	db, err := sqlite.Open(context.Background(), cfg)
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
