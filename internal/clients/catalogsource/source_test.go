package catalogsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/weapon-deck-api/internal/clients/catalogsource"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

func TestLoadDefaultCatalog(t *testing.T) {
	bundle, err := catalogsource.New(nil).Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, bundle.Version)

	perTier := make(map[weapons.Tier]int)
	zombies := 0
	for _, rec := range bundle.Records {
		perTier[rec.Tier]++
		if rec.Category.IsSpecialMarker() {
			zombies++
		}
	}
	for _, tier := range weapons.AllTiers() {
		assert.Positive(t, perTier[tier], "tier %s has no cards", tier)
	}
	assert.Positive(t, zombies)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	doc := `
version = "v2.1.0"

[[cards]]
tier = "starting"
name = "Pistol"
set = "core"
category = "ranged"
default_count = 3
stats = { range_min = 0, range_max = 1, dice = 1, accuracy = 4, damage = 1 }
abilities = { noisy = true }
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	bundle, err := catalogsource.New(&catalogsource.Config{Path: path}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v2.1.0", bundle.Version)
	require.Len(t, bundle.Records, 1)
	rec := bundle.Records[0]
	assert.Equal(t, "starting/pistol/core", rec.DefinitionID())
	assert.Equal(t, 4, rec.Stats.Accuracy)
	assert.True(t, rec.Abilities.Noisy)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalogsource.New(&catalogsource.Config{Path: "/does/not/exist.toml"}).Load(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

func TestParseRejectsBadDocuments(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{
			name: "not toml",
			doc:  "version = ",
		},
		{
			name: "missing version",
			doc: `
[[cards]]
tier = "starting"
name = "Pistol"
set = "core"
category = "ranged"
`,
		},
		{
			name: "unknown tier",
			doc: `
version = "v1.0.0"
[[cards]]
tier = "legendary"
name = "Pistol"
set = "core"
category = "ranged"
`,
		},
		{
			name: "unknown field",
			doc: `
version = "v1.0.0"
[[cards]]
tier = "starting"
name = "Pistol"
set = "core"
category = "ranged"
acuracy = 4
`,
		},
		{
			name: "duplicate identity",
			doc: `
version = "v1.0.0"
[[cards]]
tier = "starting"
name = "Pistol"
set = "core"
category = "ranged"
[[cards]]
tier = "starting"
name = "pistol"
set = "Core"
category = "ranged"
`,
		},
		{
			name: "negative count",
			doc: `
version = "v1.0.0"
[[cards]]
tier = "starting"
name = "Pistol"
set = "core"
category = "ranged"
default_count = -1
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalogsource.Parse([]byte(tc.doc))
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}
