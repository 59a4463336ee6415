package v1alpha1

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/customization"
)

// CreatePresetRequest defines a new preset
type CreatePresetRequest struct {
	Name           string                      `json:"name"`
	IsDefault      bool                        `json:"is_default,omitempty"`
	Customizations []weapons.CustomizationSpec `json:"customizations,omitempty"`
}

// PresetRequest names a preset
type PresetRequest struct {
	ID string `json:"id"`
}

// PresetResponse carries one preset
type PresetResponse struct {
	Preset *weapons.Preset `json:"preset"`
}

// ListPresetsRequest asks for every preset
type ListPresetsRequest struct{}

// ListPresetsResponse carries every preset
type ListPresetsResponse struct {
	Presets []*weapons.Preset `json:"presets"`
}

// DeletePresetResponse is empty
type DeletePresetResponse struct{}

// SetDefaultPresetResponse carries the new default
type SetDefaultPresetResponse struct {
	Preset  *weapons.Preset `json:"preset"`
	Cleared int             `json:"cleared"`
}

// SetCustomizationRequest adds or replaces one customization on a preset
// or a session override; exactly one of the two ids is set
type SetCustomizationRequest struct {
	PresetID      string                    `json:"preset_id,omitempty"`
	SessionID     string                    `json:"session_id,omitempty"`
	Customization weapons.CustomizationSpec `json:"customization"`
}

// SetCustomizationResponse carries the stored customization and its owner
type SetCustomizationResponse struct {
	Customization *weapons.Customization   `json:"customization"`
	Preset        *weapons.Preset          `json:"preset,omitempty"`
	Override      *weapons.SessionOverride `json:"override,omitempty"`
}

// ClearSessionOverrideResponse reports how many overrides were dropped
type ClearSessionOverrideResponse struct {
	Cleared int `json:"cleared"`
}

// ApplyCustomizationsRequest switches a session to a preset and rebuilds
type ApplyCustomizationsRequest struct {
	SessionID string `json:"session_id"`
	PresetID  string `json:"preset_id,omitempty"`
}

// ApplyCustomizationsResponse carries the rebuilt decks
type ApplyCustomizationsResponse struct {
	PresetID string               `json:"preset_id"`
	Decks    []*weapons.DeckState `json:"decks"`
}

// ExportPresetResponse carries a portable preset document
type ExportPresetResponse struct {
	Data json.RawMessage `json:"data"`
}

// ImportPresetRequest carries a document produced by ExportPreset
type ImportPresetRequest struct {
	Data      json.RawMessage `json:"data"`
	Name      string          `json:"name,omitempty"`
	IsDefault bool            `json:"is_default,omitempty"`
}

// ImportPresetResponse carries the stored preset
type ImportPresetResponse struct {
	Preset                 *weapons.Preset `json:"preset"`
	CatalogVersionMismatch bool            `json:"catalog_version_mismatch"`
}

// DiffCustomizationsRequest compares customizations with catalog defaults
type DiffCustomizationsRequest struct {
	SessionID string       `json:"session_id,omitempty"`
	PresetID  string       `json:"preset_id,omitempty"`
	Tier      weapons.Tier `json:"tier,omitempty"`
}

// DiffCustomizationsResponse lists every definition that differs
type DiffCustomizationsResponse struct {
	Entries []*composition.DiffEntry `json:"entries"`
}

var customizationServiceDesc = serviceDesc(CustomizationServiceName,
	unary(CustomizationServiceName, "CreatePreset", (*Handler).CreatePreset),
	unary(CustomizationServiceName, "GetPreset", (*Handler).GetPreset),
	unary(CustomizationServiceName, "ListPresets", (*Handler).ListPresets),
	unary(CustomizationServiceName, "DeletePreset", (*Handler).DeletePreset),
	unary(CustomizationServiceName, "SetDefaultPreset", (*Handler).SetDefaultPreset),
	unary(CustomizationServiceName, "SetCustomization", (*Handler).SetCustomization),
	unary(CustomizationServiceName, "ClearSessionOverride", (*Handler).ClearSessionOverride),
	unary(CustomizationServiceName, "ApplyCustomizations", (*Handler).ApplyCustomizations),
	unary(CustomizationServiceName, "ExportPreset", (*Handler).ExportPreset),
	unary(CustomizationServiceName, "ImportPreset", (*Handler).ImportPreset),
	unary(CustomizationServiceName, "DiffCustomizations", (*Handler).DiffCustomizations),
)

func requirePreset(id string) error {
	if id == "" {
		return errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}
	return nil
}

// CreatePreset stores a new preset
func (h *Handler) CreatePreset(ctx context.Context, req *CreatePresetRequest) (*PresetResponse, error) {
	if req.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	out, err := h.customizationService.CreatePreset(ctx, &customization.CreatePresetInput{
		Name:           req.Name,
		IsDefault:      req.IsDefault,
		Customizations: req.Customizations,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &PresetResponse{Preset: out.Preset}, nil
}

// GetPreset returns one preset
func (h *Handler) GetPreset(ctx context.Context, req *PresetRequest) (*PresetResponse, error) {
	if err := requirePreset(req.ID); err != nil {
		return nil, err
	}

	out, err := h.customizationService.GetPreset(ctx, &customization.GetPresetInput{ID: req.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &PresetResponse{Preset: out.Preset}, nil
}

// ListPresets returns every preset
func (h *Handler) ListPresets(ctx context.Context, _ *ListPresetsRequest) (*ListPresetsResponse, error) {
	out, err := h.customizationService.ListPresets(ctx, &customization.ListPresetsInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListPresetsResponse{Presets: out.Presets}, nil
}

// DeletePreset removes a preset
func (h *Handler) DeletePreset(ctx context.Context, req *PresetRequest) (*DeletePresetResponse, error) {
	if err := requirePreset(req.ID); err != nil {
		return nil, err
	}

	if _, err := h.customizationService.DeletePreset(ctx, &customization.DeletePresetInput{ID: req.ID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DeletePresetResponse{}, nil
}

// SetDefaultPreset makes a preset the one new sessions use
func (h *Handler) SetDefaultPreset(ctx context.Context, req *PresetRequest) (*SetDefaultPresetResponse, error) {
	if err := requirePreset(req.ID); err != nil {
		return nil, err
	}

	out, err := h.customizationService.SetDefaultPreset(ctx, &customization.SetDefaultPresetInput{ID: req.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SetDefaultPresetResponse{Preset: out.Preset, Cleared: out.Cleared}, nil
}

// SetCustomization adds or replaces one customization
func (h *Handler) SetCustomization(ctx context.Context, req *SetCustomizationRequest) (*SetCustomizationResponse, error) {
	out, err := h.customizationService.SetCustomization(ctx, &customization.SetCustomizationInput{
		PresetID:  req.PresetID,
		SessionID: req.SessionID,
		Spec:      req.Customization,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SetCustomizationResponse{
		Customization: out.Customization,
		Preset:        out.Preset,
		Override:      out.Override,
	}, nil
}

// ClearSessionOverride drops a session's own customizations
func (h *Handler) ClearSessionOverride(ctx context.Context, req *SessionRequest) (*ClearSessionOverrideResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.customizationService.ClearSessionOverride(ctx, &customization.ClearSessionOverrideInput{
		SessionID: req.SessionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ClearSessionOverrideResponse{Cleared: out.Cleared}, nil
}

// ApplyCustomizations switches a session's preset and rebuilds its decks
func (h *Handler) ApplyCustomizations(
	ctx context.Context,
	req *ApplyCustomizationsRequest,
) (*ApplyCustomizationsResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.customizationService.ApplyCustomizations(ctx, &customization.ApplyCustomizationsInput{
		SessionID: req.SessionID,
		PresetID:  req.PresetID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ApplyCustomizationsResponse{PresetID: out.PresetID, Decks: out.Decks}, nil
}

// ExportPreset returns a preset as a portable document
func (h *Handler) ExportPreset(ctx context.Context, req *PresetRequest) (*ExportPresetResponse, error) {
	if err := requirePreset(req.ID); err != nil {
		return nil, err
	}

	out, err := h.customizationService.ExportPreset(ctx, &customization.ExportPresetInput{ID: req.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ExportPresetResponse{Data: out.Data}, nil
}

// ImportPreset stores a preset from a portable document
func (h *Handler) ImportPreset(ctx context.Context, req *ImportPresetRequest) (*ImportPresetResponse, error) {
	if len(req.Data) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("data is required"))
	}

	out, err := h.customizationService.ImportPreset(ctx, &customization.ImportPresetInput{
		Data:      req.Data,
		Name:      req.Name,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ImportPresetResponse{
		Preset:                 out.Preset,
		CatalogVersionMismatch: out.CatalogVersionMismatch,
	}, nil
}

// DiffCustomizations lists how customizations change the catalog defaults
func (h *Handler) DiffCustomizations(
	ctx context.Context,
	req *DiffCustomizationsRequest,
) (*DiffCustomizationsResponse, error) {
	if req.SessionID == "" && req.PresetID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id or preset_id is required"))
	}
	if req.Tier != "" && !req.Tier.IsValid() {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown tier %q", req.Tier))
	}

	out, err := h.customizationService.Diff(ctx, &customization.DiffInput{
		SessionID: req.SessionID,
		PresetID:  req.PresetID,
		Tier:      req.Tier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DiffCustomizationsResponse{Entries: out.Entries}, nil
}
