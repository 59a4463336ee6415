// Package catalog provides the interface for card catalog persistence
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/weapon-deck-api/internal/repositories/catalog Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// Repository defines the interface for catalog persistence
type Repository interface {
	// Load reads every stored definition and instance
	// Returns an empty output with Version "" when nothing was imported yet
	// Returns errors.Internal for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Apply upserts definitions, inserts new instances and records the
	// version, all in one transaction. Instances are never deleted.
	// Returns errors.InvalidArgument for an empty version
	// Returns errors.Internal for storage failures
	Apply(ctx context.Context, input ApplyInput) (*ApplyOutput, error)
}

// LoadInput defines the input for loading the catalog
type LoadInput struct{}

// LoadOutput defines the output for loading the catalog
type LoadOutput struct {
	Version     string
	ImportedAt  time.Time
	Definitions []*weapons.CardDefinition
	Instances   []*weapons.CardInstance
}

// ApplyInput defines the input for applying an import
type ApplyInput struct {
	Version     string
	ImportedAt  time.Time
	Definitions []*weapons.CardDefinition
	Instances   []*weapons.CardInstance
}

// ApplyOutput defines the output for applying an import
type ApplyOutput struct {
	DefinitionsWritten int
	InstancesCreated   int
}
