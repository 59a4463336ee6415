package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/idgen"
)

func TestSequentialCountsFromOne(t *testing.T) {
	gen := idgen.NewSequential("item")
	assert.Equal(t, "item_1", gen.Generate())
	assert.Equal(t, "item_2", gen.Generate())

	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestUUIDPrefixAndUniqueness(t *testing.T) {
	gen := idgen.NewUUID("preset")
	a, b := gen.Generate(), gen.Generate()

	assert.True(t, strings.HasPrefix(a, "preset_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, idgen.NewUUID("").Generate(), 36)
}
