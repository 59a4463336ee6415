// Package presets provides the interface for durable customization presets
package presets

//go:generate mockgen -destination=mock/mock_repository.go -package=presetsmock github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// Repository defines the interface for preset persistence
type Repository interface {
	// Create stores a new preset with its customizations. A preset flagged
	// default clears the flag on every other preset in the same transaction.
	// Returns errors.InvalidArgument for a missing id or name
	// Returns errors.AlreadyExists if the id is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a preset
	// Returns errors.NotFound if the preset does not exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every preset ordered by name
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Update replaces a preset's name, default flag and customizations
	// Returns errors.NotFound if the preset does not exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a preset and its customizations
	// Returns errors.NotFound if the preset does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// SetDefault flags one preset as default and clears the flag on every
	// other preset in the same transaction
	// Returns errors.NotFound if the preset does not exist
	SetDefault(ctx context.Context, input SetDefaultInput) (*SetDefaultOutput, error)
}

// CreateInput defines the input for creating a preset
type CreateInput struct {
	Preset *weapons.Preset
}

// CreateOutput defines the output for creating a preset
type CreateOutput struct {
	Preset *weapons.Preset
	// Cleared is how many other presets lost the default flag
	Cleared int
}

// GetInput defines the input for getting a preset
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a preset
type GetOutput struct {
	Preset *weapons.Preset
}

// ListInput defines the input for listing presets
type ListInput struct{}

// ListOutput defines the output for listing presets
type ListOutput struct {
	Presets []*weapons.Preset
}

// UpdateInput defines the input for updating a preset
type UpdateInput struct {
	Preset *weapons.Preset
}

// UpdateOutput defines the output for updating a preset
type UpdateOutput struct {
	Preset *weapons.Preset
}

// DeleteInput defines the input for deleting a preset
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a preset
type DeleteOutput struct{}

// SetDefaultInput defines the input for selecting the default preset
type SetDefaultInput struct {
	ID        string
	UpdatedAt time.Time
}

// SetDefaultOutput defines the output for selecting the default preset
type SetDefaultOutput struct {
	// Cleared is how many other presets lost the default flag
	Cleared int
}
