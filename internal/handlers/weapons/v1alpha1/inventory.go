package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/inventory"
)

// HeldWeapon is an inventory item with its card definition attached
type HeldWeapon struct {
	Item       *weapons.InventoryItem  `json:"item"`
	Definition *weapons.CardDefinition `json:"definition"`
}

// AddItemRequest names a drawn or discarded card to pick up
type AddItemRequest struct {
	SessionID  string `json:"session_id"`
	InstanceID string `json:"instance_id"`
}

// SlotChangeResponse reports an add or move; Item is empty when the
// target slot type was full
type SlotChangeResponse struct {
	Status   inventory.Status       `json:"status"`
	Item     *weapons.InventoryItem `json:"item,omitempty"`
	Capacity int                    `json:"capacity"`
}

// RemoveItemRequest names an item to drop
type RemoveItemRequest struct {
	SessionID     string `json:"session_id"`
	ItemID        string `json:"item_id"`
	DiscardToDeck bool   `json:"discard_to_deck,omitempty"`
}

// RemoveItemResponse carries the dropped item
type RemoveItemResponse struct {
	Item *weapons.InventoryItem `json:"item"`
}

// MoveItemRequest names an item to move between slot types
type MoveItemRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
}

// ReplaceWeaponRequest swaps a held weapon for a drawn card
type ReplaceWeaponRequest struct {
	SessionID        string `json:"session_id"`
	OldItemID        string `json:"old_item_id"`
	NewInstanceID    string `json:"new_instance_id"`
	DiscardOldToDeck bool   `json:"discard_old_to_deck,omitempty"`
}

// ReplaceWeaponResponse carries both halves of a swap
type ReplaceWeaponResponse struct {
	Removed *weapons.InventoryItem `json:"removed"`
	Added   *weapons.InventoryItem `json:"added"`
}

// SessionRequest names a session
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// GetInventoryResponse carries both slot types and their limits
type GetInventoryResponse struct {
	Active           []*HeldWeapon            `json:"active"`
	Backpack         []*HeldWeapon            `json:"backpack"`
	Settings         *weapons.SessionSettings `json:"settings"`
	ActiveCapacity   int                      `json:"active_capacity"`
	BackpackCapacity int                      `json:"backpack_capacity"`
}

// GetEffectiveActiveWeaponsResponse carries the weapons usable in play
type GetEffectiveActiveWeaponsResponse struct {
	Weapons            []*HeldWeapon `json:"weapons"`
	AllInventoryActive bool          `json:"all_inventory_active"`
}

// AllInventoryActiveResponse reports the modifier
type AllInventoryActiveResponse struct {
	AllInventoryActive bool `json:"all_inventory_active"`
}

// SetAllInventoryActiveRequest toggles the modifier
type SetAllInventoryActiveRequest struct {
	SessionID          string `json:"session_id"`
	AllInventoryActive bool   `json:"all_inventory_active"`
}

// SettingsResponse carries session settings after a change
type SettingsResponse struct {
	Settings         *weapons.SessionSettings `json:"settings"`
	BackpackCapacity int                      `json:"backpack_capacity,omitempty"`
}

// SetBonusSlotsRequest changes the backpack bonus
type SetBonusSlotsRequest struct {
	SessionID  string `json:"session_id"`
	BonusSlots int    `json:"bonus_slots"`
}

// GetInventoryHistoryRequest asks for the inventory event log
type GetInventoryHistoryRequest struct {
	SessionID string `json:"session_id"`
	Limit     int    `json:"limit,omitempty"`
}

// GetInventoryHistoryResponse carries events newest first
type GetInventoryHistoryResponse struct {
	Events []*weapons.InventoryEvent `json:"events"`
}

var inventoryServiceDesc = serviceDesc(InventoryServiceName,
	unary(InventoryServiceName, "AddToActive", (*Handler).AddToActive),
	unary(InventoryServiceName, "AddToBackpack", (*Handler).AddToBackpack),
	unary(InventoryServiceName, "RemoveItem", (*Handler).RemoveItem),
	unary(InventoryServiceName, "MoveActiveToBackpack", (*Handler).MoveActiveToBackpack),
	unary(InventoryServiceName, "MoveBackpackToActive", (*Handler).MoveBackpackToActive),
	unary(InventoryServiceName, "ReplaceWeapon", (*Handler).ReplaceWeapon),
	unary(InventoryServiceName, "GetInventory", (*Handler).GetInventory),
	unary(InventoryServiceName, "GetEffectiveActiveWeapons", (*Handler).GetEffectiveActiveWeapons),
	unary(InventoryServiceName, "IsAllInventoryActive", (*Handler).IsAllInventoryActive),
	unary(InventoryServiceName, "SetAllInventoryActive", (*Handler).SetAllInventoryActive),
	unary(InventoryServiceName, "SetBonusSlots", (*Handler).SetBonusSlots),
	unary(InventoryServiceName, "GetInventoryHistory", (*Handler).GetInventoryHistory),
)

func toHeld(held []*inventory.HeldWeapon) []*HeldWeapon {
	result := make([]*HeldWeapon, 0, len(held))
	for _, w := range held {
		result = append(result, &HeldWeapon{Item: w.Item, Definition: w.Definition})
	}
	return result
}

func validateAdd(req *AddItemRequest) error {
	if err := requireSession(req.SessionID); err != nil {
		return err
	}
	if req.InstanceID == "" {
		return errors.ToGRPCError(errors.InvalidArgument("instance_id is required"))
	}
	return nil
}

func validateMove(req *MoveItemRequest) error {
	if err := requireSession(req.SessionID); err != nil {
		return err
	}
	if req.ItemID == "" {
		return errors.ToGRPCError(errors.InvalidArgument("item_id is required"))
	}
	return nil
}

// AddToActive puts a card into an active slot
func (h *Handler) AddToActive(ctx context.Context, req *AddItemRequest) (*SlotChangeResponse, error) {
	if err := validateAdd(req); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.AddToActive(ctx, &inventory.AddInput{
		SessionID:  req.SessionID,
		InstanceID: req.InstanceID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SlotChangeResponse{Status: out.Status, Item: out.Item, Capacity: out.Capacity}, nil
}

// AddToBackpack puts a card into a backpack slot
func (h *Handler) AddToBackpack(ctx context.Context, req *AddItemRequest) (*SlotChangeResponse, error) {
	if err := validateAdd(req); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.AddToBackpack(ctx, &inventory.AddInput{
		SessionID:  req.SessionID,
		InstanceID: req.InstanceID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SlotChangeResponse{Status: out.Status, Item: out.Item, Capacity: out.Capacity}, nil
}

// RemoveItem drops an item, returning its card to the deck or setting it aside
func (h *Handler) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*RemoveItemResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}
	if req.ItemID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("item_id is required"))
	}

	out, err := h.inventoryService.Remove(ctx, &inventory.RemoveInput{
		SessionID:     req.SessionID,
		ItemID:        req.ItemID,
		DiscardToDeck: req.DiscardToDeck,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &RemoveItemResponse{Item: out.Item}, nil
}

// MoveActiveToBackpack moves an active item into the backpack
func (h *Handler) MoveActiveToBackpack(ctx context.Context, req *MoveItemRequest) (*SlotChangeResponse, error) {
	if err := validateMove(req); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.MoveActiveToBackpack(ctx, &inventory.MoveInput{
		SessionID: req.SessionID,
		ItemID:    req.ItemID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SlotChangeResponse{Status: out.Status, Item: out.Item, Capacity: out.Capacity}, nil
}

// MoveBackpackToActive moves a backpack item into an active slot
func (h *Handler) MoveBackpackToActive(ctx context.Context, req *MoveItemRequest) (*SlotChangeResponse, error) {
	if err := validateMove(req); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.MoveBackpackToActive(ctx, &inventory.MoveInput{
		SessionID: req.SessionID,
		ItemID:    req.ItemID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SlotChangeResponse{Status: out.Status, Item: out.Item, Capacity: out.Capacity}, nil
}

// ReplaceWeapon swaps a held weapon for a drawn card in the same slot
func (h *Handler) ReplaceWeapon(ctx context.Context, req *ReplaceWeaponRequest) (*ReplaceWeaponResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}
	if req.OldItemID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("old_item_id is required"))
	}
	if req.NewInstanceID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("new_instance_id is required"))
	}

	out, err := h.inventoryService.ReplaceWeapon(ctx, &inventory.ReplaceInput{
		SessionID:        req.SessionID,
		OldItemID:        req.OldItemID,
		NewInstanceID:    req.NewInstanceID,
		DiscardOldToDeck: req.DiscardOldToDeck,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ReplaceWeaponResponse{Removed: out.Removed, Added: out.Added}, nil
}

// GetInventory returns both slot types
func (h *Handler) GetInventory(ctx context.Context, req *SessionRequest) (*GetInventoryResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.GetInventory(ctx, &inventory.GetInventoryInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetInventoryResponse{
		Active:           toHeld(out.Active),
		Backpack:         toHeld(out.Backpack),
		Settings:         out.Settings,
		ActiveCapacity:   out.ActiveCapacity,
		BackpackCapacity: out.BackpackCapacity,
	}, nil
}

// GetEffectiveActiveWeapons returns the weapons usable in play
func (h *Handler) GetEffectiveActiveWeapons(
	ctx context.Context,
	req *SessionRequest,
) (*GetEffectiveActiveWeaponsResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.GetEffectiveActiveWeapons(ctx, &inventory.GetEffectiveActiveWeaponsInput{
		SessionID: req.SessionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetEffectiveActiveWeaponsResponse{
		Weapons:            toHeld(out.Weapons),
		AllInventoryActive: out.AllInventoryActive,
	}, nil
}

// IsAllInventoryActive reports the all-inventory-active modifier
func (h *Handler) IsAllInventoryActive(ctx context.Context, req *SessionRequest) (*AllInventoryActiveResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.IsAllInventoryActive(ctx, &inventory.IsAllInventoryActiveInput{
		SessionID: req.SessionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &AllInventoryActiveResponse{AllInventoryActive: out.AllInventoryActive}, nil
}

// SetAllInventoryActive toggles the all-inventory-active modifier
func (h *Handler) SetAllInventoryActive(ctx context.Context, req *SetAllInventoryActiveRequest) (*SettingsResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.SetAllInventoryActive(ctx, &inventory.SetAllInventoryActiveInput{
		SessionID:          req.SessionID,
		AllInventoryActive: req.AllInventoryActive,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SettingsResponse{Settings: out.Settings}, nil
}

// SetBonusSlots changes how many extra backpack slots a session has
func (h *Handler) SetBonusSlots(ctx context.Context, req *SetBonusSlotsRequest) (*SettingsResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.SetBonusSlots(ctx, &inventory.SetBonusSlotsInput{
		SessionID:  req.SessionID,
		BonusSlots: req.BonusSlots,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SettingsResponse{Settings: out.Settings, BackpackCapacity: out.BackpackCapacity}, nil
}

// GetInventoryHistory returns inventory events newest first
func (h *Handler) GetInventoryHistory(
	ctx context.Context,
	req *GetInventoryHistoryRequest,
) (*GetInventoryHistoryResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.inventoryService.GetHistory(ctx, &inventory.GetHistoryInput{
		SessionID: req.SessionID,
		Limit:     req.Limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetInventoryHistoryResponse{Events: out.Events}, nil
}
