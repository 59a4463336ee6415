// Package composition turns catalog defaults plus customizations into the
// concrete set of card instances a deck holds.
package composition

//go:generate mockgen -destination=mock/mock_resolver.go -package=compositionmock github.com/KirkDiggler/weapon-deck-api/internal/engine/composition Resolver

import (
	"sort"

	"github.com/samber/lo"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

// Resolver resolves deck compositions
type Resolver interface {
	Resolve(input *ResolveInput) (*Composition, error)
	Diff(input *DiffInput) ([]*DiffEntry, error)
}

// ResolveInput selects a tier and the customizations to apply. Preset and
// Override are optional; the override wins over the preset.
type ResolveInput struct {
	Tier     weapons.Tier
	Preset   *weapons.Preset
	Override *weapons.SessionOverride
	// Held are instances that are out of the deck (in an inventory). They
	// count toward their definition's copies but are not placed.
	Held []string
}

// Composition is the resolved content of a fresh deck
type Composition struct {
	Tier weapons.Tier
	// Instances to place in the deck, in catalog order
	Instances []*weapons.CardInstance
	// Counts is the effective copy count of every enabled definition
	Counts map[string]int
	// HeldCount is how many held instances belong to the composition
	HeldCount int
}

// Size is the number of copies the composition calls for
func (c *Composition) Size() int {
	return len(c.Instances) + c.HeldCount
}

// Config holds the dependencies for the resolver
type Config struct {
	Catalog *weapons.CatalogHandle
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

type resolver struct {
	catalog *weapons.CatalogHandle
}

// NewResolver creates a composition resolver over the shared catalog handle
func NewResolver(cfg *Config) (Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &resolver{catalog: cfg.Catalog}, nil
}

type setting struct {
	enabled bool
	count   int
}

func (r *resolver) snapshot() (*weapons.Catalog, error) {
	catalog := r.catalog.Current()
	if catalog == nil {
		return nil, errors.FailedPrecondition("catalog is not loaded")
	}
	return catalog, nil
}

// effective resolves one definition: session override first, then preset,
// then the definition's own default
func effective(def *weapons.CardDefinition, override, preset map[string]*weapons.Customization) setting {
	for _, layer := range []map[string]*weapons.Customization{override, preset} {
		c, ok := layer[def.ID]
		if !ok {
			continue
		}
		count := def.DefaultCount
		if c.Count != nil {
			count = *c.Count
		}
		return setting{enabled: c.Enabled, count: count}
	}
	return defaults(def)
}

func defaults(def *weapons.CardDefinition) setting {
	if !def.DefaultEnabled() {
		return setting{}
	}
	return setting{enabled: true, count: def.DefaultCount}
}

func layers(o *weapons.SessionOverride, p *weapons.Preset) (override, preset map[string]*weapons.Customization) {
	if o != nil {
		override = weapons.Effective(o.Customizations)
	}
	if p != nil {
		preset = weapons.Effective(p.Customizations)
	}
	return override, preset
}

// Resolve materializes the tier's deck
func (r *resolver) Resolve(input *ResolveInput) (*Composition, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Tier.IsValid() {
		return nil, errors.InvalidArgumentf("invalid tier %q", input.Tier)
	}

	catalog, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	held := lo.SliceToMap(input.Held, func(id string) (string, struct{}) { return id, struct{}{} })
	override, preset := layers(input.Override, input.Preset)

	out := &Composition{
		Tier:      input.Tier,
		Instances: []*weapons.CardInstance{},
		Counts:    make(map[string]int),
	}

	for _, def := range catalog.DefinitionsForTier(input.Tier) {
		s := effective(def, override, preset)
		if !s.enabled || s.count <= 0 {
			continue
		}

		minted := catalog.InstancesOf(def.ID)
		if s.count > len(minted) {
			return nil, errors.CatalogInconsistencyf(
				"definition %s wants %d copies but only %d are minted", def.ID, s.count, len(minted))
		}
		out.Counts[def.ID] = s.count

		// Held copies are part of the deck already; fill the rest from the
		// lowest free copy indexes.
		isHeld := func(inst *weapons.CardInstance) bool {
			_, ok := held[inst.ID]
			return ok
		}
		heldCopies := lo.Filter(minted, func(inst *weapons.CardInstance, _ int) bool { return isHeld(inst) })
		free := lo.Reject(minted, func(inst *weapons.CardInstance, _ int) bool { return isHeld(inst) })

		inHand := min(len(heldCopies), s.count)
		out.HeldCount += inHand
		out.Instances = append(out.Instances, free[:s.count-inHand]...)
	}

	return out, nil
}

// DiffKind classifies how a customization moved a definition off its default
type DiffKind string

// Diff kinds
const (
	DiffKindDisabled     DiffKind = "disabled"
	DiffKindEnabled      DiffKind = "enabled"
	DiffKindCountChanged DiffKind = "count_changed"
)

// DiffInput selects what to compare against pure defaults
type DiffInput struct {
	Tier     weapons.Tier
	Preset   *weapons.Preset
	Override *weapons.SessionOverride
}

// DiffEntry is one definition whose effective setting differs from default
type DiffEntry struct {
	DefinitionID string       `json:"definition_id"`
	Name         string       `json:"name"`
	Tier         weapons.Tier `json:"tier"`
	Kind         DiffKind     `json:"kind"`
	DefaultCount int          `json:"default_count"`
	CustomCount  int          `json:"custom_count"`
}

// Diff compares the effective configuration with catalog defaults. An empty
// tier compares every tier.
func (r *resolver) Diff(input *DiffInput) ([]*DiffEntry, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Tier != "" && !input.Tier.IsValid() {
		return nil, errors.InvalidArgumentf("invalid tier %q", input.Tier)
	}

	catalog, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	tiers := weapons.AllTiers()
	if input.Tier != "" {
		tiers = []weapons.Tier{input.Tier}
	}
	override, preset := layers(input.Override, input.Preset)

	entries := []*DiffEntry{}
	for _, tier := range tiers {
		for _, def := range catalog.DefinitionsForTier(tier) {
			base := defaults(def)
			got := effective(def, override, preset)

			entry := &DiffEntry{
				DefinitionID: def.ID,
				Name:         def.Name,
				Tier:         tier,
				DefaultCount: base.count,
			}
			switch {
			case base.enabled && !got.enabled:
				entry.Kind = DiffKindDisabled
			case !base.enabled && got.enabled:
				entry.Kind = DiffKindEnabled
				entry.CustomCount = got.count
			case base.enabled && got.count != base.count:
				entry.Kind = DiffKindCountChanged
				entry.CustomCount = got.count
			default:
				continue
			}
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].DefinitionID < entries[j].DefinitionID })
	return entries, nil
}

// DefaultPreset picks the preset flagged default. When several are flagged
// the most recently updated wins; flagged reports how many were.
func DefaultPreset(presets []*weapons.Preset) (chosen *weapons.Preset, flagged int) {
	for _, p := range presets {
		if !p.IsDefault {
			continue
		}
		flagged++
		if chosen == nil || p.UpdatedAt.After(chosen.UpdatedAt) {
			chosen = p
		}
	}
	return chosen, flagged
}
