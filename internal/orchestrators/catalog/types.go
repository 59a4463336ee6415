package catalog

import (
	"github.com/KirkDiggler/weapon-deck-api/internal/clients/catalogsource"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// Outcome describes what an import did
type Outcome string

// Import outcomes
const (
	// OutcomeApplied means the incoming catalog was written
	OutcomeApplied Outcome = "applied"
	// OutcomeUnchanged means the incoming version equals the stored one
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeSkipped means the incoming version is older than the stored one
	OutcomeSkipped Outcome = "skipped"
)

// ImportInput defines the request for importing a catalog
type ImportInput struct {
	// Bundle to import; nil loads one from the configured source
	Bundle *catalogsource.Bundle
	// Force re-applies the bundle regardless of version ordering
	Force bool
}

// ImportOutput defines the response for importing a catalog
type ImportOutput struct {
	Outcome         Outcome
	PreviousVersion string
	Version         string
	Added           int
	Updated         int
	Deprecated      int
	InstancesMinted int
}

// GetCatalogInput defines the request for reading the loaded catalog
type GetCatalogInput struct {
	// Tier filters definitions; empty returns every tier
	Tier weapons.Tier
	// IncludeDeprecated also returns definitions flagged deprecated
	IncludeDeprecated bool
}

// GetCatalogOutput defines the response for reading the loaded catalog
type GetCatalogOutput struct {
	Version     string
	Definitions []*weapons.CardDefinition
}
