// Package customization manages presets and per-session overrides, and the
// portable export format presets travel in.
package customization

//go:generate mockgen -destination=mock/mock_service.go -package=customizationmock github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/customization Service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/deck"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/clock"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/idgen"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
)

// Service defines the interface for customization operations
type Service interface {
	CreatePreset(ctx context.Context, input *CreatePresetInput) (*CreatePresetOutput, error)
	GetPreset(ctx context.Context, input *GetPresetInput) (*GetPresetOutput, error)
	ListPresets(ctx context.Context, input *ListPresetsInput) (*ListPresetsOutput, error)
	DeletePreset(ctx context.Context, input *DeletePresetInput) (*DeletePresetOutput, error)

	// SetDefaultPreset makes one preset the default for sessions that have
	// not selected one
	SetDefaultPreset(ctx context.Context, input *SetDefaultPresetInput) (*SetDefaultPresetOutput, error)

	// SetCustomization adds or replaces the customization for one definition
	// on a preset or a session override. Built decks change on the next reset.
	SetCustomization(ctx context.Context, input *SetCustomizationInput) (*SetCustomizationOutput, error)

	// ClearSessionOverride drops every session-level customization
	ClearSessionOverride(ctx context.Context, input *ClearSessionOverrideInput) (*ClearSessionOverrideOutput, error)

	// ApplyCustomizations selects a preset for a session and rebuilds its
	// built decks in one step
	ApplyCustomizations(ctx context.Context, input *ApplyCustomizationsInput) (*ApplyCustomizationsOutput, error)

	ExportPreset(ctx context.Context, input *ExportPresetInput) (*ExportPresetOutput, error)

	// ImportPreset creates a preset from an exported blob
	// Returns errors.InvalidArgument for an unknown format version or a
	// customization naming a definition the catalog does not have
	ImportPreset(ctx context.Context, input *ImportPresetInput) (*ImportPresetOutput, error)

	// Diff lists definitions whose effective setting differs from the
	// catalog default
	Diff(ctx context.Context, input *DiffInput) (*DiffOutput, error)
}

// Config holds the dependencies for the customization orchestrator
type Config struct {
	Presets     presets.Repository
	Sessions    session.Service
	Decks       deck.Service
	Resolver    composition.Resolver
	Catalog     *weapons.CatalogHandle
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Presets == nil {
		vb.RequiredField("Presets")
	}
	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Decks == nil {
		vb.RequiredField("Decks")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	presets  presets.Repository
	sessions session.Service
	decks    deck.Service
	resolver composition.Resolver
	catalog  *weapons.CatalogHandle
	idGen    idgen.Generator
	clock    clock.Clock
}

// NewOrchestrator creates a new customization orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		presets:  cfg.Presets,
		sessions: cfg.Sessions,
		decks:    cfg.Decks,
		resolver: cfg.Resolver,
		catalog:  cfg.Catalog,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
	}, nil
}

func (o *orchestrator) currentCatalog() (*weapons.Catalog, error) {
	catalog := o.catalog.Current()
	if catalog == nil {
		return nil, errors.FailedPrecondition("catalog is not loaded")
	}
	return catalog, nil
}

// validateSpecs checks count bounds and that every definition exists
func validateSpecs(catalog *weapons.Catalog, specs []weapons.CustomizationSpec) error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		field := fmt.Sprintf("customizations[%d]", i)
		if err := spec.Validate(); err != nil {
			vb.Field(field, err.Error())
			continue
		}
		if _, ok := catalog.Definition(spec.DefinitionID); !ok {
			vb.Fieldf(field, "unknown definition %s", spec.DefinitionID)
		}
		if seen[spec.DefinitionID] {
			vb.Fieldf(field, "duplicate customization for %s", spec.DefinitionID)
		}
		seen[spec.DefinitionID] = true
	}
	return vb.Build()
}

func (o *orchestrator) CreatePreset(ctx context.Context, input *CreatePresetInput) (*CreatePresetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.InvalidArgument("preset name is required")
	}

	catalog, err := o.currentCatalog()
	if err != nil {
		return nil, err
	}
	if err := validateSpecs(catalog, input.Customizations); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	preset := &weapons.Preset{
		ID:        o.idGen.Generate(),
		Name:      name,
		IsDefault: input.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, spec := range input.Customizations {
		c, err := weapons.NewPresetCustomization(preset.ID, spec)
		if err != nil {
			return nil, errors.InvalidArgument(err.Error())
		}
		preset.Customizations = append(preset.Customizations, c)
	}

	out, err := o.presets.Create(ctx, presets.CreateInput{Preset: preset})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create preset")
	}

	slog.InfoContext(ctx, "Preset created",
		"preset_id", out.Preset.ID,
		"name", out.Preset.Name,
		"customizations", len(out.Preset.Customizations),
		"is_default", out.Preset.IsDefault,
		"defaults_cleared", out.Cleared,
	)
	return &CreatePresetOutput{Preset: out.Preset}, nil
}

func (o *orchestrator) GetPreset(ctx context.Context, input *GetPresetInput) (*GetPresetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("preset ID is required")
	}

	out, err := o.presets.Get(ctx, presets.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}
	return &GetPresetOutput{Preset: out.Preset}, nil
}

func (o *orchestrator) ListPresets(ctx context.Context, _ *ListPresetsInput) (*ListPresetsOutput, error) {
	out, err := o.presets.List(ctx, presets.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list presets")
	}
	return &ListPresetsOutput{Presets: out.Presets}, nil
}

func (o *orchestrator) DeletePreset(ctx context.Context, input *DeletePresetInput) (*DeletePresetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("preset ID is required")
	}

	if _, err := o.presets.Delete(ctx, presets.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Preset deleted", "preset_id", input.ID)
	return &DeletePresetOutput{}, nil
}

func (o *orchestrator) SetDefaultPreset(ctx context.Context, input *SetDefaultPresetInput) (*SetDefaultPresetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("preset ID is required")
	}

	out, err := o.presets.SetDefault(ctx, presets.SetDefaultInput{ID: input.ID, UpdatedAt: o.clock.Now()})
	if err != nil {
		return nil, err
	}

	got, err := o.presets.Get(ctx, presets.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reload preset %s", input.ID)
	}

	slog.InfoContext(ctx, "Default preset changed", "preset_id", input.ID, "cleared", out.Cleared)
	return &SetDefaultPresetOutput{Preset: got.Preset, Cleared: out.Cleared}, nil
}

func (o *orchestrator) SetCustomization(ctx context.Context, input *SetCustomizationInput) (*SetCustomizationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if (input.PresetID == "") == (input.SessionID == "") {
		return nil, errors.InvalidArgument("exactly one of preset_id and session_id is required")
	}

	catalog, err := o.currentCatalog()
	if err != nil {
		return nil, err
	}
	if err := validateSpecs(catalog, []weapons.CustomizationSpec{input.Spec}); err != nil {
		return nil, err
	}

	if input.PresetID != "" {
		return o.setPresetCustomization(ctx, input)
	}
	return o.setSessionCustomization(ctx, input)
}

func (o *orchestrator) setPresetCustomization(ctx context.Context, input *SetCustomizationInput) (*SetCustomizationOutput, error) {
	c, err := weapons.NewPresetCustomization(input.PresetID, input.Spec)
	if err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}

	got, err := o.presets.Get(ctx, presets.GetInput{ID: input.PresetID})
	if err != nil {
		return nil, err
	}
	preset := got.Preset
	preset.Customizations = weapons.Upsert(preset.Customizations, c)
	preset.UpdatedAt = o.clock.Now()

	if _, err := o.presets.Update(ctx, presets.UpdateInput{Preset: preset}); err != nil {
		return nil, errors.Wrapf(err, "failed to update preset %s", preset.ID)
	}

	return &SetCustomizationOutput{Customization: c, Preset: preset}, nil
}

func (o *orchestrator) setSessionCustomization(ctx context.Context, input *SetCustomizationInput) (*SetCustomizationOutput, error) {
	c, err := weapons.NewSessionCustomization(input.SessionID, input.Spec)
	if err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}

	out, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.State.Override.Customizations = weapons.Upsert(m.State.Override.Customizations, c)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	override := *out.State.Override
	return &SetCustomizationOutput{Customization: c, Override: &override}, nil
}

func (o *orchestrator) ClearSessionOverride(ctx context.Context, input *ClearSessionOverrideInput) (*ClearSessionOverrideOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	cleared := 0
	_, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			cleared = len(m.State.Override.Customizations)
			if cleared == 0 {
				m.Unchanged()
				return nil
			}
			m.State.Override.Customizations = []*weapons.Customization{}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &ClearSessionOverrideOutput{Cleared: cleared}, nil
}

func (o *orchestrator) ApplyCustomizations(ctx context.Context, input *ApplyCustomizationsInput) (*ApplyCustomizationsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	presetID := input.PresetID
	out, err := o.decks.Reset(ctx, &deck.ResetInput{SessionID: input.SessionID, SelectPreset: &presetID})
	if err != nil {
		return nil, err
	}

	return &ApplyCustomizationsOutput{PresetID: presetID, Decks: out.Decks}, nil
}

func (o *orchestrator) ExportPreset(ctx context.Context, input *ExportPresetInput) (*ExportPresetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("preset ID is required")
	}

	catalog, err := o.currentCatalog()
	if err != nil {
		return nil, err
	}
	got, err := o.presets.Get(ctx, presets.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	blob := &PresetBlob{
		FormatVersion:  FormatVersion,
		CatalogVersion: catalog.Version(),
		Name:           got.Preset.Name,
		Customizations: weapons.Specs(got.Preset.Customizations),
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode preset")
	}

	return &ExportPresetOutput{Blob: blob, Data: data}, nil
}

func (o *orchestrator) ImportPreset(ctx context.Context, input *ImportPresetInput) (*ImportPresetOutput, error) {
	if input == nil || len(input.Data) == 0 {
		return nil, errors.InvalidArgument("preset data is required")
	}

	var blob PresetBlob
	if err := json.Unmarshal(input.Data, &blob); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "preset data is not valid JSON")
	}
	if blob.FormatVersion != FormatVersion {
		return nil, errors.InvalidArgumentf("unsupported preset format version %d", blob.FormatVersion)
	}

	catalog, err := o.currentCatalog()
	if err != nil {
		return nil, err
	}
	mismatch := blob.CatalogVersion != catalog.Version()
	if mismatch {
		slog.WarnContext(ctx, "Importing preset exported from another catalog version",
			"preset_catalog_version", blob.CatalogVersion,
			"catalog_version", catalog.Version(),
		)
	}

	name := blob.Name
	if input.Name != "" {
		name = input.Name
	}
	created, err := o.CreatePreset(ctx, &CreatePresetInput{
		Name:           name,
		IsDefault:      input.IsDefault,
		Customizations: blob.Customizations,
	})
	if err != nil {
		return nil, err
	}

	return &ImportPresetOutput{Preset: created.Preset, CatalogVersionMismatch: mismatch}, nil
}

// presetForSession mirrors how decks pick their preset: the session's
// selection if it still exists, otherwise the default
func (o *orchestrator) presetForSession(ctx context.Context, presetID string) (*weapons.Preset, error) {
	if presetID != "" {
		got, err := o.presets.Get(ctx, presets.GetInput{ID: presetID})
		if err == nil {
			return got.Preset, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	list, err := o.presets.List(ctx, presets.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list presets")
	}
	chosen, _ := composition.DefaultPreset(list.Presets)
	return chosen, nil
}

func (o *orchestrator) Diff(ctx context.Context, input *DiffInput) (*DiffOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" && input.PresetID == "" {
		return nil, errors.InvalidArgument("a session_id or preset_id is required")
	}

	diff := &composition.DiffInput{Tier: input.Tier}
	if input.SessionID != "" {
		read, err := o.sessions.Read(ctx, &session.ReadInput{SessionID: input.SessionID})
		if err != nil {
			return nil, err
		}
		diff.Override = read.State.Override

		presetID := read.State.Settings.PresetID
		if input.PresetID != "" {
			presetID = input.PresetID
		}
		if diff.Preset, err = o.presetForSession(ctx, presetID); err != nil {
			return nil, err
		}
	} else {
		got, err := o.presets.Get(ctx, presets.GetInput{ID: input.PresetID})
		if err != nil {
			return nil, err
		}
		diff.Preset = got.Preset
	}

	entries, err := o.resolver.Diff(diff)
	if err != nil {
		return nil, err
	}
	return &DiffOutput{Entries: entries}, nil
}
