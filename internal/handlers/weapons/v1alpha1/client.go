package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

// Client calls the weapon deck services over a grpc connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps a connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Call invokes any method by service and method name. Errors come back as
// internal errors with their original code.
func (c *Client) Call(ctx context.Context, service, method string, req, resp any) error {
	err := c.conn.Invoke(ctx, "/"+service+"/"+method, req, resp, grpc.CallContentSubtype(CodecName))
	return errors.FromGRPCError(err)
}

func invoke[Resp any](ctx context.Context, c *Client, service, method string, req any) (*Resp, error) {
	resp := new(Resp)
	if err := c.Call(ctx, service, method, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetCatalog calls CatalogService.GetCatalog
func (c *Client) GetCatalog(ctx context.Context, req *GetCatalogRequest) (*GetCatalogResponse, error) {
	return invoke[GetCatalogResponse](ctx, c, CatalogServiceName, "GetCatalog", req)
}

// ImportCatalog calls CatalogService.ImportCatalog
func (c *Client) ImportCatalog(ctx context.Context, req *ImportCatalogRequest) (*ImportCatalogResponse, error) {
	return invoke[ImportCatalogResponse](ctx, c, CatalogServiceName, "ImportCatalog", req)
}

// BuildDeck calls DeckService.BuildDeck
func (c *Client) BuildDeck(ctx context.Context, req *DeckRequest) (*BuildDeckResponse, error) {
	return invoke[BuildDeckResponse](ctx, c, DeckServiceName, "BuildDeck", req)
}

// ResetDecks calls DeckService.ResetDecks
func (c *Client) ResetDecks(ctx context.Context, req *ResetDecksRequest) (*ResetDecksResponse, error) {
	return invoke[ResetDecksResponse](ctx, c, DeckServiceName, "ResetDecks", req)
}

// Draw calls DeckService.Draw
func (c *Client) Draw(ctx context.Context, req *DeckRequest) (*DrawResponse, error) {
	return invoke[DrawResponse](ctx, c, DeckServiceName, "Draw", req)
}

// DrawTwo calls DeckService.DrawTwo
func (c *Client) DrawTwo(ctx context.Context, req *DeckRequest) (*DrawTwoResponse, error) {
	return invoke[DrawTwoResponse](ctx, c, DeckServiceName, "DrawTwo", req)
}

// Discard calls DeckService.Discard
func (c *Client) Discard(ctx context.Context, req *DiscardRequest) (*DeckResponse, error) {
	return invoke[DeckResponse](ctx, c, DeckServiceName, "Discard", req)
}

// Shuffle calls DeckService.Shuffle
func (c *Client) Shuffle(ctx context.Context, req *DeckRequest) (*ShuffleResponse, error) {
	return invoke[ShuffleResponse](ctx, c, DeckServiceName, "Shuffle", req)
}

// ReclaimDiscard calls DeckService.ReclaimDiscard
func (c *Client) ReclaimDiscard(ctx context.Context, req *ReclaimDiscardRequest) (*ReclaimDiscardResponse, error) {
	return invoke[ReclaimDiscardResponse](ctx, c, DeckServiceName, "ReclaimDiscard", req)
}

// GetRecentDraws calls DeckService.GetRecentDraws
func (c *Client) GetRecentDraws(ctx context.Context, req *DeckRequest) (*GetRecentDrawsResponse, error) {
	return invoke[GetRecentDrawsResponse](ctx, c, DeckServiceName, "GetRecentDraws", req)
}

// GetDeck calls DeckService.GetDeck
func (c *Client) GetDeck(ctx context.Context, req *DeckRequest) (*GetDeckResponse, error) {
	return invoke[GetDeckResponse](ctx, c, DeckServiceName, "GetDeck", req)
}

// EndSession calls DeckService.EndSession
func (c *Client) EndSession(ctx context.Context, req *EndSessionRequest) (*EndSessionResponse, error) {
	return invoke[EndSessionResponse](ctx, c, DeckServiceName, "EndSession", req)
}

// AddToActive calls InventoryService.AddToActive
func (c *Client) AddToActive(ctx context.Context, req *AddItemRequest) (*SlotChangeResponse, error) {
	return invoke[SlotChangeResponse](ctx, c, InventoryServiceName, "AddToActive", req)
}

// AddToBackpack calls InventoryService.AddToBackpack
func (c *Client) AddToBackpack(ctx context.Context, req *AddItemRequest) (*SlotChangeResponse, error) {
	return invoke[SlotChangeResponse](ctx, c, InventoryServiceName, "AddToBackpack", req)
}

// RemoveItem calls InventoryService.RemoveItem
func (c *Client) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*RemoveItemResponse, error) {
	return invoke[RemoveItemResponse](ctx, c, InventoryServiceName, "RemoveItem", req)
}

// MoveActiveToBackpack calls InventoryService.MoveActiveToBackpack
func (c *Client) MoveActiveToBackpack(ctx context.Context, req *MoveItemRequest) (*SlotChangeResponse, error) {
	return invoke[SlotChangeResponse](ctx, c, InventoryServiceName, "MoveActiveToBackpack", req)
}

// MoveBackpackToActive calls InventoryService.MoveBackpackToActive
func (c *Client) MoveBackpackToActive(ctx context.Context, req *MoveItemRequest) (*SlotChangeResponse, error) {
	return invoke[SlotChangeResponse](ctx, c, InventoryServiceName, "MoveBackpackToActive", req)
}

// ReplaceWeapon calls InventoryService.ReplaceWeapon
func (c *Client) ReplaceWeapon(ctx context.Context, req *ReplaceWeaponRequest) (*ReplaceWeaponResponse, error) {
	return invoke[ReplaceWeaponResponse](ctx, c, InventoryServiceName, "ReplaceWeapon", req)
}

// GetInventory calls InventoryService.GetInventory
func (c *Client) GetInventory(ctx context.Context, req *SessionRequest) (*GetInventoryResponse, error) {
	return invoke[GetInventoryResponse](ctx, c, InventoryServiceName, "GetInventory", req)
}

// GetEffectiveActiveWeapons calls InventoryService.GetEffectiveActiveWeapons
func (c *Client) GetEffectiveActiveWeapons(
	ctx context.Context,
	req *SessionRequest,
) (*GetEffectiveActiveWeaponsResponse, error) {
	return invoke[GetEffectiveActiveWeaponsResponse](ctx, c, InventoryServiceName, "GetEffectiveActiveWeapons", req)
}

// IsAllInventoryActive calls InventoryService.IsAllInventoryActive
func (c *Client) IsAllInventoryActive(ctx context.Context, req *SessionRequest) (*AllInventoryActiveResponse, error) {
	return invoke[AllInventoryActiveResponse](ctx, c, InventoryServiceName, "IsAllInventoryActive", req)
}

// SetAllInventoryActive calls InventoryService.SetAllInventoryActive
func (c *Client) SetAllInventoryActive(ctx context.Context, req *SetAllInventoryActiveRequest) (*SettingsResponse, error) {
	return invoke[SettingsResponse](ctx, c, InventoryServiceName, "SetAllInventoryActive", req)
}

// SetBonusSlots calls InventoryService.SetBonusSlots
func (c *Client) SetBonusSlots(ctx context.Context, req *SetBonusSlotsRequest) (*SettingsResponse, error) {
	return invoke[SettingsResponse](ctx, c, InventoryServiceName, "SetBonusSlots", req)
}

// GetInventoryHistory calls InventoryService.GetInventoryHistory
func (c *Client) GetInventoryHistory(
	ctx context.Context,
	req *GetInventoryHistoryRequest,
) (*GetInventoryHistoryResponse, error) {
	return invoke[GetInventoryHistoryResponse](ctx, c, InventoryServiceName, "GetInventoryHistory", req)
}

// CreatePreset calls CustomizationService.CreatePreset
func (c *Client) CreatePreset(ctx context.Context, req *CreatePresetRequest) (*PresetResponse, error) {
	return invoke[PresetResponse](ctx, c, CustomizationServiceName, "CreatePreset", req)
}

// GetPreset calls CustomizationService.GetPreset
func (c *Client) GetPreset(ctx context.Context, req *PresetRequest) (*PresetResponse, error) {
	return invoke[PresetResponse](ctx, c, CustomizationServiceName, "GetPreset", req)
}

// ListPresets calls CustomizationService.ListPresets
func (c *Client) ListPresets(ctx context.Context, req *ListPresetsRequest) (*ListPresetsResponse, error) {
	return invoke[ListPresetsResponse](ctx, c, CustomizationServiceName, "ListPresets", req)
}

// DeletePreset calls CustomizationService.DeletePreset
func (c *Client) DeletePreset(ctx context.Context, req *PresetRequest) (*DeletePresetResponse, error) {
	return invoke[DeletePresetResponse](ctx, c, CustomizationServiceName, "DeletePreset", req)
}

// SetDefaultPreset calls CustomizationService.SetDefaultPreset
func (c *Client) SetDefaultPreset(ctx context.Context, req *PresetRequest) (*SetDefaultPresetResponse, error) {
	return invoke[SetDefaultPresetResponse](ctx, c, CustomizationServiceName, "SetDefaultPreset", req)
}

// SetCustomization calls CustomizationService.SetCustomization
func (c *Client) SetCustomization(ctx context.Context, req *SetCustomizationRequest) (*SetCustomizationResponse, error) {
	return invoke[SetCustomizationResponse](ctx, c, CustomizationServiceName, "SetCustomization", req)
}

// ClearSessionOverride calls CustomizationService.ClearSessionOverride
func (c *Client) ClearSessionOverride(ctx context.Context, req *SessionRequest) (*ClearSessionOverrideResponse, error) {
	return invoke[ClearSessionOverrideResponse](ctx, c, CustomizationServiceName, "ClearSessionOverride", req)
}

// ApplyCustomizations calls CustomizationService.ApplyCustomizations
func (c *Client) ApplyCustomizations(
	ctx context.Context,
	req *ApplyCustomizationsRequest,
) (*ApplyCustomizationsResponse, error) {
	return invoke[ApplyCustomizationsResponse](ctx, c, CustomizationServiceName, "ApplyCustomizations", req)
}

// ExportPreset calls CustomizationService.ExportPreset
func (c *Client) ExportPreset(ctx context.Context, req *PresetRequest) (*ExportPresetResponse, error) {
	return invoke[ExportPresetResponse](ctx, c, CustomizationServiceName, "ExportPreset", req)
}

// ImportPreset calls CustomizationService.ImportPreset
func (c *Client) ImportPreset(ctx context.Context, req *ImportPresetRequest) (*ImportPresetResponse, error) {
	return invoke[ImportPresetResponse](ctx, c, CustomizationServiceName, "ImportPreset", req)
}

// DiffCustomizations calls CustomizationService.DiffCustomizations
func (c *Client) DiffCustomizations(
	ctx context.Context,
	req *DiffCustomizationsRequest,
) (*DiffCustomizationsResponse, error) {
	return invoke[DiffCustomizationsResponse](ctx, c, CustomizationServiceName, "DiffCustomizations", req)
}
