package inventory

import (
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// Status reports whether a slot change happened
type Status string

// Result statuses. A full slot is an expected outcome, not an error.
const (
	StatusOK       Status = "ok"
	StatusSlotFull Status = "slot_full"
)

// HeldWeapon is an inventory item with its card definition attached
type HeldWeapon struct {
	Item       *weapons.InventoryItem
	Definition *weapons.CardDefinition
}

// AddInput defines the request for adding a drawn or discarded card
type AddInput struct {
	SessionID  string
	InstanceID string
}

// AddOutput defines the response for adding a card
type AddOutput struct {
	Status Status
	// Item is nil when the slot was full
	Item *weapons.InventoryItem
	// Capacity is the limit of the target slot type
	Capacity int
}

// RemoveInput defines the request for removing an item
type RemoveInput struct {
	SessionID string
	ItemID    string
	// DiscardToDeck puts the card on its deck's discard pile; otherwise it
	// is set aside until the next reset
	DiscardToDeck bool
}

// RemoveOutput defines the response for removing an item
type RemoveOutput struct {
	Item *weapons.InventoryItem
}

// MoveInput defines the request for moving an item between slot types
type MoveInput struct {
	SessionID string
	ItemID    string
}

// MoveOutput defines the response for moving an item
type MoveOutput struct {
	Status Status
	Item   *weapons.InventoryItem
	// Capacity is the limit of the destination slot type
	Capacity int
}

// ReplaceInput defines the request for swapping a held weapon for a new card
type ReplaceInput struct {
	SessionID        string
	OldItemID        string
	NewInstanceID    string
	DiscardOldToDeck bool
}

// ReplaceOutput defines the response for swapping a held weapon
type ReplaceOutput struct {
	Removed *weapons.InventoryItem
	Added   *weapons.InventoryItem
}

// GetInventoryInput defines the request for reading the inventory
type GetInventoryInput struct {
	SessionID string
}

// GetInventoryOutput defines the response for reading the inventory
type GetInventoryOutput struct {
	Active           []*HeldWeapon
	Backpack         []*HeldWeapon
	Settings         *weapons.SessionSettings
	ActiveCapacity   int
	BackpackCapacity int
}

// GetEffectiveActiveWeaponsInput defines the request for the gameplay view
type GetEffectiveActiveWeaponsInput struct {
	SessionID string
}

// GetEffectiveActiveWeaponsOutput defines the response for the gameplay view
type GetEffectiveActiveWeaponsOutput struct {
	Weapons            []*HeldWeapon
	AllInventoryActive bool
}

// IsAllInventoryActiveInput defines the request for reading the modifier
type IsAllInventoryActiveInput struct {
	SessionID string
}

// IsAllInventoryActiveOutput defines the response for reading the modifier
type IsAllInventoryActiveOutput struct {
	AllInventoryActive bool
}

// SetAllInventoryActiveInput defines the request for toggling the modifier
type SetAllInventoryActiveInput struct {
	SessionID          string
	AllInventoryActive bool
}

// SetAllInventoryActiveOutput defines the response for toggling the modifier
type SetAllInventoryActiveOutput struct {
	Settings *weapons.SessionSettings
}

// SetBonusSlotsInput defines the request for changing backpack bonus slots
type SetBonusSlotsInput struct {
	SessionID  string
	BonusSlots int
}

// SetBonusSlotsOutput defines the response for changing backpack bonus slots
type SetBonusSlotsOutput struct {
	Settings         *weapons.SessionSettings
	BackpackCapacity int
}

// GetHistoryInput defines the request for the inventory event log
type GetHistoryInput struct {
	SessionID string
	// Limit caps the number of events; 0 returns all of them
	Limit int
}

// GetHistoryOutput defines the response for the inventory event log
type GetHistoryOutput struct {
	// Events are ordered newest first
	Events []*weapons.InventoryEvent
}
