// Package catalog implements the catalog import orchestrator: it compares
// an incoming catalog version with the stored one, writes the difference
// and swaps the shared catalog handle.
package catalog

//go:generate mockgen -destination=mock/mock_service.go -package=catalogmock github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/catalog Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/mod/semver"

	"github.com/KirkDiggler/weapon-deck-api/internal/clients/catalogsource"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/clock"
	catalogrepo "github.com/KirkDiggler/weapon-deck-api/internal/repositories/catalog"
	"github.com/KirkDiggler/weapon-deck-api/internal/telemetry"
)

// Service defines the interface for catalog operations
type Service interface {
	// Import loads a catalog bundle and applies it when its version is newer
	// than the stored one
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)

	// GetCatalog returns the definitions of the loaded catalog
	GetCatalog(ctx context.Context, input *GetCatalogInput) (*GetCatalogOutput, error)
}

// Config holds the dependencies for the catalog orchestrator
type Config struct {
	Repository catalogrepo.Repository
	Source     catalogsource.Source
	Handle     *weapons.CatalogHandle
	Clock      clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}
	if c.Handle == nil {
		vb.RequiredField("Handle")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	repo   catalogrepo.Repository
	source catalogsource.Source
	handle *weapons.CatalogHandle
	clock  clock.Clock
}

// NewOrchestrator creates a new catalog orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:   cfg.Repository,
		source: cfg.Source,
		handle: cfg.Handle,
		clock:  cfg.Clock,
	}, nil
}

// canonicalVersion accepts versions with or without the leading "v"
func canonicalVersion(version string) (string, error) {
	v := strings.TrimSpace(version)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", errors.InvalidArgumentf("catalog version %q is not a semantic version", version)
	}
	return semver.Canonical(v), nil
}

// Import loads a catalog bundle and applies it when its version is newer
func (o *orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctx, span := telemetry.Tracer().Start(ctx, "catalog.Import")
	defer span.End()

	bundle := input.Bundle
	if bundle == nil {
		loaded, err := o.source.Load(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load catalog source")
		}
		bundle = loaded
	} else if err := bundle.Validate(); err != nil {
		return nil, err
	}

	incoming, err := canonicalVersion(bundle.Version)
	if err != nil {
		return nil, err
	}

	stored, err := o.repo.Load(ctx, catalogrepo.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stored catalog")
	}

	out := &ImportOutput{PreviousVersion: stored.Version, Version: incoming}
	span.SetAttributes(
		attribute.String("catalog.incoming_version", incoming),
		attribute.String("catalog.stored_version", stored.Version),
	)

	cmp := 1
	if stored.Version != "" {
		cmp = semver.Compare(incoming, stored.Version)
	}

	switch {
	case cmp == 0 && !input.Force:
		out.Outcome = OutcomeUnchanged
		if o.handle.Current() == nil {
			if err := o.install(stored); err != nil {
				return nil, err
			}
		}
		slog.InfoContext(ctx, "Catalog unchanged", "version", incoming)
		return out, nil

	case cmp < 0 && !input.Force:
		out.Outcome = OutcomeSkipped
		if o.handle.Current() == nil {
			if err := o.install(stored); err != nil {
				return nil, err
			}
		}
		slog.WarnContext(ctx, "Ignoring older catalog",
			"incoming_version", incoming,
			"stored_version", stored.Version,
		)
		return out, nil
	}

	now := o.clock.Now()
	definitions := o.merge(bundle, stored.Definitions, now, out)
	instances := mint(definitions)

	applied, err := o.repo.Apply(ctx, catalogrepo.ApplyInput{
		Version:     incoming,
		ImportedAt:  now,
		Definitions: definitions,
		Instances:   instances,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply catalog")
	}
	out.InstancesMinted = applied.InstancesCreated

	reloaded, err := o.repo.Load(ctx, catalogrepo.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload catalog")
	}
	if err := o.install(reloaded); err != nil {
		return nil, err
	}

	out.Outcome = OutcomeApplied
	slog.InfoContext(ctx, "Catalog imported",
		"version", incoming,
		"previous_version", stored.Version,
		"forced", input.Force,
		"added", out.Added,
		"updated", out.Updated,
		"deprecated", out.Deprecated,
		"instances_minted", out.InstancesMinted,
	)

	return out, nil
}

// merge turns bundle records into definitions, keeping the identity of
// existing ones and flagging every stored definition the bundle dropped
func (o *orchestrator) merge(
	bundle *catalogsource.Bundle,
	existing []*weapons.CardDefinition,
	now time.Time,
	out *ImportOutput,
) []*weapons.CardDefinition {
	byID := lo.SliceToMap(existing, func(def *weapons.CardDefinition) (string, *weapons.CardDefinition) {
		return def.ID, def
	})

	seen := make(map[string]bool, len(bundle.Records))
	definitions := make([]*weapons.CardDefinition, 0, len(bundle.Records)+len(existing))
	for _, rec := range bundle.Records {
		id := rec.DefinitionID()
		seen[id] = true

		if _, ok := byID[id]; ok {
			out.Updated++
		} else {
			out.Added++
		}

		definitions = append(definitions, &weapons.CardDefinition{
			ID:           id,
			Tier:         rec.Tier,
			Name:         rec.Name,
			Set:          rec.Set,
			Category:     rec.Category,
			DefaultCount: rec.DefaultCount,
			Stats:        rec.Stats,
			Abilities:    rec.Abilities,
			UpdatedAt:    now,
		})
	}

	for _, def := range existing {
		if seen[def.ID] {
			continue
		}
		dropped := *def
		if !dropped.Deprecated {
			out.Deprecated++
			dropped.Deprecated = true
			dropped.UpdatedAt = now
		}
		definitions = append(definitions, &dropped)
	}

	return definitions
}

// mint lists every instance each definition must have. Existing instances
// are left alone by the repository, so ids stay stable across imports.
func mint(definitions []*weapons.CardDefinition) []*weapons.CardInstance {
	var out []*weapons.CardInstance
	for _, def := range definitions {
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

func (o *orchestrator) install(loaded *catalogrepo.LoadOutput) error {
	if loaded.Version == "" {
		return nil
	}

	snapshot, err := weapons.NewCatalog(loaded.Version, loaded.Definitions, loaded.Instances)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeFailedPrecondition, "stored catalog is inconsistent")
	}
	o.handle.Replace(snapshot)
	return nil
}

// GetCatalog returns the definitions of the loaded catalog
func (o *orchestrator) GetCatalog(_ context.Context, input *GetCatalogInput) (*GetCatalogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Tier != "" && !input.Tier.IsValid() {
		return nil, errors.InvalidArgumentf("unknown tier %q", input.Tier)
	}

	snapshot := o.handle.Current()
	if snapshot == nil {
		return nil, errors.FailedPrecondition("catalog is not loaded")
	}

	definitions := snapshot.Definitions()
	if input.Tier != "" {
		definitions = snapshot.DefinitionsForTier(input.Tier)
	}
	if !input.IncludeDeprecated {
		definitions = lo.Reject(definitions, func(def *weapons.CardDefinition, _ int) bool {
			return def.Deprecated
		})
	}

	return &GetCatalogOutput{
		Version:     snapshot.Version(),
		Definitions: definitions,
	}, nil
}
