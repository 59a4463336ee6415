package weapons

import (
	"sort"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// SlotType is where an inventory item sits
type SlotType string

// Slot types
const (
	SlotTypeActive   SlotType = "active"
	SlotTypeBackpack SlotType = "backpack"
)

// IsValid checks if the slot type is known
func (s SlotType) IsValid() bool {
	return s == SlotTypeActive || s == SlotTypeBackpack
}

// Other returns the opposite slot type
func (s SlotType) Other() SlotType {
	if s == SlotTypeActive {
		return SlotTypeBackpack
	}
	return SlotTypeActive
}

// Capacity constants
const (
	ActiveCapacity       = 2
	BaseBackpackCapacity = 3
	MaxBonusSlots        = 10
)

// InventoryItem is one card held by a session
type InventoryItem struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	InstanceID string    `json:"instance_id"`
	Tier       Tier      `json:"tier"`
	SlotType   SlotType  `json:"slot_type"`
	SlotIndex  int       `json:"slot_index"`
	Equipped   bool      `json:"equipped"`
	AddedAt    time.Time `json:"added_at"`
}

// GetID returns the item ID
func (i *InventoryItem) GetID() string {
	return i.ID
}

// GetType returns the entity type for rpg-toolkit
func (i *InventoryItem) GetType() string {
	return "inventory_item"
}

var _ core.Entity = (*InventoryItem)(nil)

// EventType is the kind of inventory change
type EventType string

// Inventory event types
const (
	EventTypeAdd     EventType = "add"
	EventTypeRemove  EventType = "remove"
	EventTypeMove    EventType = "move"
	EventTypeReplace EventType = "replace"
)

// SlotRef addresses one slot
type SlotRef struct {
	SlotType SlotType `json:"slot_type"`
	Index    int      `json:"index"`
}

// InventoryEvent is an append-only audit record. A replace is recorded as a
// pair of replace events sharing ReplaceGroup: one leaving the slot, one
// entering it.
type InventoryEvent struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	Type            EventType `json:"type"`
	InstanceID      string    `json:"instance_id"`
	ItemID          string    `json:"item_id"`
	From            *SlotRef  `json:"from,omitempty"`
	To              *SlotRef  `json:"to,omitempty"`
	ReplaceGroup    string    `json:"replace_group,omitempty"`
	DiscardedToDeck bool      `json:"discarded_to_deck,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// SessionSettings are the per-session inventory and customization knobs
type SessionSettings struct {
	SessionID          string    `json:"session_id"`
	BonusSlots         int       `json:"bonus_slots"`
	AllInventoryActive bool      `json:"all_inventory_active"`
	PresetID           string    `json:"preset_id,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BackpackCapacity is the base backpack size plus bonus slots
func (s *SessionSettings) BackpackCapacity() int {
	return BaseBackpackCapacity + s.BonusSlots
}

// Capacity returns how many items fit in a slot type
func (s *SessionSettings) Capacity(slot SlotType) int {
	if slot == SlotTypeActive {
		return ActiveCapacity
	}
	return s.BackpackCapacity()
}

// Inventory is the set of items a session holds. Slot indices within a slot
// type are dense and start at zero.
type Inventory struct {
	Items []*InventoryItem `json:"items"`
}

// Normalize replaces a nil item list with an empty one
func (inv *Inventory) Normalize() {
	if inv.Items == nil {
		inv.Items = []*InventoryItem{}
	}
}

// InSlot returns the items of a slot type ordered by index
func (inv *Inventory) InSlot(slot SlotType) []*InventoryItem {
	out := make([]*InventoryItem, 0, len(inv.Items))
	for _, item := range inv.Items {
		if item.SlotType == slot {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SlotIndex < out[j].SlotIndex })
	return out
}

// Count returns how many items are in a slot type
func (inv *Inventory) Count(slot SlotType) int {
	n := 0
	for _, item := range inv.Items {
		if item.SlotType == slot {
			n++
		}
	}
	return n
}

// CountForTier returns how many held items came from a deck tier
func (inv *Inventory) CountForTier(tier Tier) int {
	n := 0
	for _, item := range inv.Items {
		if item.Tier == tier {
			n++
		}
	}
	return n
}

// Find looks up an item by ID
func (inv *Inventory) Find(itemID string) (*InventoryItem, bool) {
	for _, item := range inv.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return nil, false
}

// FindInstance looks up the item holding a card instance
func (inv *Inventory) FindInstance(instanceID string) (*InventoryItem, bool) {
	for _, item := range inv.Items {
		if item.InstanceID == instanceID {
			return item, true
		}
	}
	return nil, false
}

// InstanceIDs returns every held instance
func (inv *Inventory) InstanceIDs() []string {
	out := make([]string, 0, len(inv.Items))
	for _, item := range inv.Items {
		out = append(out, item.InstanceID)
	}
	return out
}

// Place appends an item at the end of a slot type
func (inv *Inventory) Place(item *InventoryItem, slot SlotType) {
	item.SlotType = slot
	item.SlotIndex = inv.Count(slot)
	item.Equipped = slot == SlotTypeActive
	inv.Items = append(inv.Items, item)
}

// PlaceAt inserts an item at index within a slot type, shifting the items
// at and after it down by one. An index past the end appends.
func (inv *Inventory) PlaceAt(item *InventoryItem, slot SlotType, index int) {
	count := inv.Count(slot)
	if index < 0 || index >= count {
		inv.Place(item, slot)
		return
	}
	for _, existing := range inv.Items {
		if existing.SlotType == slot && existing.SlotIndex >= index {
			existing.SlotIndex++
		}
	}
	item.SlotType = slot
	item.SlotIndex = index
	item.Equipped = slot == SlotTypeActive
	inv.Items = append(inv.Items, item)
}

// Remove deletes an item and closes the gap it leaves
func (inv *Inventory) Remove(itemID string) (*InventoryItem, bool) {
	for i, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:i:i], inv.Items[i+1:]...)
			inv.reindex(item.SlotType)
			return item, true
		}
	}
	return nil, false
}

// Move takes an item out of its slot type and appends it to another
func (inv *Inventory) Move(itemID string, to SlotType) (*InventoryItem, bool) {
	item, ok := inv.Remove(itemID)
	if !ok {
		return nil, false
	}
	inv.Place(item, to)
	return item, true
}

func (inv *Inventory) reindex(slot SlotType) {
	for i, item := range inv.InSlot(slot) {
		item.SlotIndex = i
	}
}

// Clone returns a deep copy
func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{Items: make([]*InventoryItem, 0, len(inv.Items))}
	for _, item := range inv.Items {
		c := *item
		out.Items = append(out.Items, &c)
	}
	return out
}

// EffectiveActive is the gameplay view of active weapons. With
// allInventoryActive set every held item counts as active.
func (inv *Inventory) EffectiveActive(allInventoryActive bool) []*InventoryItem {
	if !allInventoryActive {
		return inv.InSlot(SlotTypeActive)
	}
	return append(inv.InSlot(SlotTypeActive), inv.InSlot(SlotTypeBackpack)...)
}
