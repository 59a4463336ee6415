// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// CatalogBuilder provides a fluent interface for building test catalogs.
// Every definition gets its full set of minted instances.
type CatalogBuilder struct {
	version     string
	definitions []*weapons.CardDefinition
}

// NewCatalogBuilder creates a builder for an empty v1.0.0 catalog
func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{version: "v1.0.0"}
}

// WithVersion sets the catalog version
func (b *CatalogBuilder) WithVersion(version string) *CatalogBuilder {
	b.version = version
	return b
}

// WithCard adds a definition in the core set
func (b *CatalogBuilder) WithCard(tier weapons.Tier, name string, category weapons.Category, defaultCount int) *CatalogBuilder {
	b.definitions = append(b.definitions, &weapons.CardDefinition{
		ID:           weapons.DefinitionID(tier, name, "core"),
		Tier:         tier,
		Name:         name,
		Set:          "core",
		Category:     category,
		DefaultCount: defaultCount,
		Stats:        weapons.CombatStats{RangeMin: 0, RangeMax: 1, Dice: 1, Accuracy: 4, Damage: 1},
		UpdatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return b
}

// WithDeprecatedCard adds a definition flagged deprecated
func (b *CatalogBuilder) WithDeprecatedCard(tier weapons.Tier, name string, defaultCount int) *CatalogBuilder {
	b.WithCard(tier, name, weapons.CategoryMelee, defaultCount)
	b.definitions[len(b.definitions)-1].Deprecated = true
	return b
}

// Definitions returns the definitions added so far
func (b *CatalogBuilder) Definitions() []*weapons.CardDefinition {
	return b.definitions
}

// Instances mints the instances for every definition
func (b *CatalogBuilder) Instances() []*weapons.CardInstance {
	var out []*weapons.CardInstance
	for _, def := range b.definitions {
		for i := 0; i < def.MintCount(); i++ {
			out = append(out, &weapons.CardInstance{
				ID:           weapons.InstanceID(def.ID, i),
				DefinitionID: def.ID,
				CopyIndex:    i,
			})
		}
	}
	return out
}

// Build returns the catalog snapshot; it panics on an invalid definition
func (b *CatalogBuilder) Build() *weapons.Catalog {
	catalog, err := weapons.NewCatalog(b.version, b.definitions, b.Instances())
	if err != nil {
		panic(err)
	}
	return catalog
}

// BuildHandle wraps the catalog in a shared handle
func (b *CatalogBuilder) BuildHandle() *weapons.CatalogHandle {
	return weapons.NewCatalogHandle(b.Build())
}

// TwoByThree is the tier with two definitions of three copies each
func TwoByThree() *CatalogBuilder {
	return NewCatalogBuilder().
		WithCard(weapons.TierStarting, "Pistol", weapons.CategoryRanged, 3).
		WithCard(weapons.TierStarting, "Crowbar", weapons.CategoryMelee, 3)
}

// StandardCatalog has a playable deck in every tier
func StandardCatalog() *CatalogBuilder {
	return NewCatalogBuilder().
		WithCard(weapons.TierStarting, "Pistol", weapons.CategoryRanged, 3).
		WithCard(weapons.TierStarting, "Crowbar", weapons.CategoryMelee, 3).
		WithCard(weapons.TierStarting, "Fire Axe", weapons.CategoryMelee, 2).
		WithCard(weapons.TierStarting, "Flashlight", weapons.CategoryBonus, 1).
		WithCard(weapons.TierRegular, "Shotgun", weapons.CategoryRanged, 3).
		WithCard(weapons.TierRegular, "Machete", weapons.CategoryMelee, 3).
		WithCard(weapons.TierRegular, "Sub-MG", weapons.CategoryDual, 2).
		WithCard(weapons.TierRegular, "Katana", weapons.CategoryMelee, 2).
		WithCard(weapons.TierRegular, "Plenty of Ammo", weapons.CategoryBonus, 2).
		WithCard(weapons.TierRegular, "Aaahh!!", weapons.CategoryZombie, 2).
		WithCard(weapons.TierUltrared, "Golden AK-47", weapons.CategoryRanged, 1).
		WithCard(weapons.TierUltrared, "Nailbat", weapons.CategoryMelee, 1).
		WithCard(weapons.TierUltrared, "Ma's Shotgun", weapons.CategoryRanged, 1)
}
