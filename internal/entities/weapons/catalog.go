// Package weapons holds the weapon card domain: the catalog of card
// definitions and their physical copies, customizations, per-session deck
// state and the player inventory.
package weapons

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Tier identifies one of the three parallel weapon decks
type Tier string

// Deck tiers
const (
	TierStarting Tier = "starting"
	TierRegular  Tier = "regular"
	TierUltrared Tier = "ultrared"
)

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the tier is one of the known decks
func (t Tier) IsValid() bool {
	switch t {
	case TierStarting, TierRegular, TierUltrared:
		return true
	default:
		return false
	}
}

// AllTiers returns every deck tier in play order
func AllTiers() []Tier {
	return []Tier{TierStarting, TierRegular, TierUltrared}
}

// Category classifies a card definition
type Category string

// Card categories. Bonus and zombie cards carry extra shuffle rules;
// zombie cards are the special-marker category.
const (
	CategoryMelee  Category = "melee"
	CategoryRanged Category = "ranged"
	CategoryDual   Category = "dual"
	CategoryBonus  Category = "bonus"
	CategoryZombie Category = "zombie"
)

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	switch c {
	case CategoryMelee, CategoryRanged, CategoryDual, CategoryBonus, CategoryZombie:
		return true
	default:
		return false
	}
}

// IsBonus reports whether cards of this category are spread through the deck
func (c Category) IsBonus() bool {
	return c == CategoryBonus
}

// IsSpecialMarker reports whether cards of this category are kept off the top
// of the deck and away from each other
func (c Category) IsSpecialMarker() bool {
	return c == CategoryZombie
}

// MaxCountOverride is the largest copy count a customization may request.
// The importer mints at least this many instances of every definition.
const MaxCountOverride = 10

// CombatStats is the stat block printed on a weapon card
type CombatStats struct {
	RangeMin int `json:"range_min" toml:"range_min"`
	RangeMax int `json:"range_max" toml:"range_max"`
	Dice     int `json:"dice" toml:"dice"`
	Accuracy int `json:"accuracy" toml:"accuracy"`
	Damage   int `json:"damage" toml:"damage"`
	Overload int `json:"overload,omitempty" toml:"overload"`
}

// Abilities are the rule flags printed on a weapon card
type Abilities struct {
	OpensDoors bool `json:"opens_doors,omitempty" toml:"opens_doors"`
	NoisyDoors bool `json:"noisy_doors,omitempty" toml:"noisy_doors"`
	Noisy      bool `json:"noisy,omitempty" toml:"noisy"`
	DualWield  bool `json:"dual_wield,omitempty" toml:"dual_wield"`
	Reload     bool `json:"reload,omitempty" toml:"reload"`
}

// CardDefinition describes one distinct card type
type CardDefinition struct {
	ID           string      `json:"id"`
	Tier         Tier        `json:"tier"`
	Name         string      `json:"name"`
	Set          string      `json:"set"`
	Category     Category    `json:"category"`
	DefaultCount int         `json:"default_count"`
	Stats        CombatStats `json:"stats"`
	Abilities    Abilities   `json:"abilities"`
	Deprecated   bool        `json:"deprecated"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// DefaultEnabled reports whether the definition is in a deck when nothing
// customizes it
func (d *CardDefinition) DefaultEnabled() bool {
	return d.DefaultCount > 0 && !d.Deprecated
}

// MintCount is how many instances the catalog keeps for this definition
func (d *CardDefinition) MintCount() int {
	if d.DefaultCount > MaxCountOverride {
		return d.DefaultCount
	}
	return MaxCountOverride
}

// DefinitionID builds the stable identity of a definition from its
// (tier, name, set) tuple
func DefinitionID(tier Tier, name, set string) string {
	return fmt.Sprintf("%s/%s/%s", tier, slug(name), slug(set))
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// CardInstance is one physical copy of a definition
type CardInstance struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definition_id"`
	CopyIndex    int    `json:"copy_index"`
}

// InstanceID builds the stable identity of a copy
func InstanceID(definitionID string, copyIndex int) string {
	return fmt.Sprintf("%s#%d", definitionID, copyIndex)
}

// GetID returns the instance ID
func (c *CardInstance) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CardInstance) GetType() string {
	return "weapon_card"
}

var _ core.Entity = (*CardInstance)(nil)

// Catalog is an immutable snapshot of every definition and minted instance
type Catalog struct {
	version      string
	definitions  map[string]*CardDefinition
	instances    map[string]*CardInstance
	byTier       map[Tier][]*CardDefinition
	byDefinition map[string][]*CardInstance
}

// NewCatalog indexes definitions and instances. Every instance must reference
// a known definition.
func NewCatalog(version string, definitions []*CardDefinition, instances []*CardInstance) (*Catalog, error) {
	c := &Catalog{
		version:      version,
		definitions:  make(map[string]*CardDefinition, len(definitions)),
		instances:    make(map[string]*CardInstance, len(instances)),
		byTier:       make(map[Tier][]*CardDefinition),
		byDefinition: make(map[string][]*CardInstance, len(definitions)),
	}

	for _, def := range definitions {
		if !def.Tier.IsValid() {
			return nil, fmt.Errorf("definition %s has unknown tier %q", def.ID, def.Tier)
		}
		c.definitions[def.ID] = def
		c.byTier[def.Tier] = append(c.byTier[def.Tier], def)
	}

	for _, inst := range instances {
		if _, ok := c.definitions[inst.DefinitionID]; !ok {
			return nil, fmt.Errorf("instance %s references unknown definition %s", inst.ID, inst.DefinitionID)
		}
		c.instances[inst.ID] = inst
		c.byDefinition[inst.DefinitionID] = append(c.byDefinition[inst.DefinitionID], inst)
	}

	for tier := range c.byTier {
		defs := c.byTier[tier]
		sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	}
	for id := range c.byDefinition {
		insts := c.byDefinition[id]
		sort.Slice(insts, func(i, j int) bool { return insts[i].CopyIndex < insts[j].CopyIndex })
	}

	return c, nil
}

// Version returns the catalog's semantic version
func (c *Catalog) Version() string {
	return c.version
}

// Definition looks up a definition by ID
func (c *Catalog) Definition(id string) (*CardDefinition, bool) {
	def, ok := c.definitions[id]
	return def, ok
}

// Instance looks up an instance by ID
func (c *Catalog) Instance(id string) (*CardInstance, bool) {
	inst, ok := c.instances[id]
	return inst, ok
}

// DefinitionOf resolves the definition behind an instance ID
func (c *Catalog) DefinitionOf(instanceID string) (*CardDefinition, bool) {
	inst, ok := c.instances[instanceID]
	if !ok {
		return nil, false
	}
	return c.Definition(inst.DefinitionID)
}

// DefinitionsForTier returns the tier's definitions ordered by ID
func (c *Catalog) DefinitionsForTier(tier Tier) []*CardDefinition {
	defs := c.byTier[tier]
	out := make([]*CardDefinition, len(defs))
	copy(out, defs)
	return out
}

// InstancesOf returns the minted copies of a definition ordered by copy index
func (c *Catalog) InstancesOf(definitionID string) []*CardInstance {
	insts := c.byDefinition[definitionID]
	out := make([]*CardInstance, len(insts))
	copy(out, insts)
	return out
}

// Definitions returns every definition ordered by ID
func (c *Catalog) Definitions() []*CardDefinition {
	out := make([]*CardDefinition, 0, len(c.definitions))
	for _, def := range c.definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CatalogHandle is the shared, explicitly passed reference to the loaded
// catalog. Readers always see a complete snapshot; only the import path swaps it.
type CatalogHandle struct {
	current atomic.Pointer[Catalog]
}

// NewCatalogHandle wraps an initial snapshot (which may be nil until import runs)
func NewCatalogHandle(c *Catalog) *CatalogHandle {
	h := &CatalogHandle{}
	if c != nil {
		h.current.Store(c)
	}
	return h
}

// Current returns the active snapshot, or nil if no catalog is loaded
func (h *CatalogHandle) Current() *Catalog {
	return h.current.Load()
}

// Replace installs a new snapshot
func (h *CatalogHandle) Replace(c *Catalog) {
	h.current.Store(c)
}
