package customization

import (
	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// FormatVersion is the preset export format this service writes and reads
const FormatVersion = 1

// PresetBlob is the portable form of a preset
type PresetBlob struct {
	FormatVersion  int                         `json:"format_version"`
	CatalogVersion string                      `json:"catalog_version"`
	Name           string                      `json:"name"`
	Customizations []weapons.CustomizationSpec `json:"customizations"`
}

// CreatePresetInput defines the request for creating a preset
type CreatePresetInput struct {
	Name           string
	IsDefault      bool
	Customizations []weapons.CustomizationSpec
}

// CreatePresetOutput defines the response for creating a preset
type CreatePresetOutput struct {
	Preset *weapons.Preset
}

// GetPresetInput defines the request for getting a preset
type GetPresetInput struct {
	ID string
}

// GetPresetOutput defines the response for getting a preset
type GetPresetOutput struct {
	Preset *weapons.Preset
}

// ListPresetsInput defines the request for listing presets
type ListPresetsInput struct{}

// ListPresetsOutput defines the response for listing presets
type ListPresetsOutput struct {
	Presets []*weapons.Preset
}

// DeletePresetInput defines the request for deleting a preset
type DeletePresetInput struct {
	ID string
}

// DeletePresetOutput defines the response for deleting a preset
type DeletePresetOutput struct{}

// SetDefaultPresetInput defines the request for selecting the default preset
type SetDefaultPresetInput struct {
	ID string
}

// SetDefaultPresetOutput defines the response for selecting the default preset
type SetDefaultPresetOutput struct {
	Preset *weapons.Preset
	// Cleared is how many other presets lost the default flag
	Cleared int
}

// SetCustomizationInput defines the request for adding or replacing one
// customization. Exactly one of PresetID and SessionID names the target.
type SetCustomizationInput struct {
	PresetID  string
	SessionID string
	Spec      weapons.CustomizationSpec
}

// SetCustomizationOutput defines the response for setting a customization
type SetCustomizationOutput struct {
	Customization *weapons.Customization
	// Preset is set when the target was a preset
	Preset *weapons.Preset
	// Override is set when the target was a session
	Override *weapons.SessionOverride
}

// ClearSessionOverrideInput defines the request for dropping a session's overrides
type ClearSessionOverrideInput struct {
	SessionID string
}

// ClearSessionOverrideOutput defines the response for dropping overrides
type ClearSessionOverrideOutput struct {
	Cleared int
}

// ApplyCustomizationsInput defines the request for switching a session to a
// preset and rebuilding its decks. An empty PresetID goes back to the default.
type ApplyCustomizationsInput struct {
	SessionID string
	PresetID  string
}

// ApplyCustomizationsOutput defines the response for applying customizations
type ApplyCustomizationsOutput struct {
	PresetID string
	Decks    []*weapons.DeckState
}

// ExportPresetInput defines the request for exporting a preset
type ExportPresetInput struct {
	ID string
}

// ExportPresetOutput defines the response for exporting a preset
type ExportPresetOutput struct {
	Blob *PresetBlob
	Data []byte
}

// ImportPresetInput defines the request for importing a preset blob
type ImportPresetInput struct {
	Data []byte
	// Name replaces the blob's name when set
	Name      string
	IsDefault bool
}

// ImportPresetOutput defines the response for importing a preset blob
type ImportPresetOutput struct {
	Preset *weapons.Preset
	// CatalogVersionMismatch reports that the blob came from another catalog version
	CatalogVersionMismatch bool
}

// DiffInput defines the request for comparing customizations with defaults.
// With a SessionID the session's preset and override are compared; with
// only a PresetID that preset alone is.
type DiffInput struct {
	SessionID string
	PresetID  string
	// Tier limits the comparison; empty compares every tier
	Tier weapons.Tier
}

// DiffOutput defines the response for a diff
type DiffOutput struct {
	Entries []*composition.DiffEntry
}
