// Package idgen produces the IDs for held items and presets
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator returns random UUIDs, joined to a kind prefix when one is set
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a UUID generator for the given kind, e.g. "item"
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new ID such as item_5f0c...
func (g *UUIDGenerator) Generate() string {
	return join(g.prefix, uuid.NewString())
}

// SequentialGenerator counts up from 1 so tests can predict IDs
type SequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewSequential creates a counting generator for the given kind
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns item_1, item_2 and so on
func (g *SequentialGenerator) Generate() string {
	return join(g.prefix, strconv.FormatUint(g.next.Add(1), 10))
}

func join(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
