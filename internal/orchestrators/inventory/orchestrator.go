// Package inventory implements the inventory service: moving weapon cards
// between a session's decks and its active and backpack slots.
package inventory

//go:generate mockgen -destination=mock/mock_service.go -package=inventorymock github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/inventory Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/clock"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/idgen"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
)

// Service defines the interface for inventory operations
type Service interface {
	// AddToActive takes a drawn or discarded card into an active slot
	AddToActive(ctx context.Context, input *AddInput) (*AddOutput, error)

	// AddToBackpack takes a drawn or discarded card into the backpack
	AddToBackpack(ctx context.Context, input *AddInput) (*AddOutput, error)

	// Remove drops an item, returning its card to the deck's discard pile or
	// setting it aside
	Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error)

	// MoveActiveToBackpack moves an active item into the backpack
	MoveActiveToBackpack(ctx context.Context, input *MoveInput) (*MoveOutput, error)

	// MoveBackpackToActive moves a backpack item into an active slot
	MoveBackpackToActive(ctx context.Context, input *MoveInput) (*MoveOutput, error)

	// ReplaceWeapon removes one item and puts a new card in its slot in a
	// single step
	ReplaceWeapon(ctx context.Context, input *ReplaceInput) (*ReplaceOutput, error)

	// GetInventory returns both slot types with card definitions
	GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error)

	// GetEffectiveActiveWeapons returns what counts as active for game rules
	GetEffectiveActiveWeapons(ctx context.Context, input *GetEffectiveActiveWeaponsInput) (*GetEffectiveActiveWeaponsOutput, error)

	// IsAllInventoryActive reports the session's all-inventory-active modifier
	IsAllInventoryActive(ctx context.Context, input *IsAllInventoryActiveInput) (*IsAllInventoryActiveOutput, error)

	// SetAllInventoryActive toggles the all-inventory-active modifier
	SetAllInventoryActive(ctx context.Context, input *SetAllInventoryActiveInput) (*SetAllInventoryActiveOutput, error)

	// SetBonusSlots changes how many extra backpack slots the session has
	SetBonusSlots(ctx context.Context, input *SetBonusSlotsInput) (*SetBonusSlotsOutput, error)

	// GetHistory returns the inventory event log newest first
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)
}

// Config holds the dependencies for the inventory orchestrator
type Config struct {
	Sessions    session.Service
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	sessions session.Service
	clock    clock.Clock
	idGen    idgen.Generator
}

// NewOrchestrator creates a new inventory orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		sessions: cfg.Sessions,
		clock:    cfg.Clock,
		idGen:    cfg.IDGenerator,
	}, nil
}

func slotRef(item *weapons.InventoryItem) *weapons.SlotRef {
	return &weapons.SlotRef{SlotType: item.SlotType, Index: item.SlotIndex}
}

func (o *orchestrator) newEvent(sessionID string, eventType weapons.EventType, item *weapons.InventoryItem) *weapons.InventoryEvent {
	return &weapons.InventoryEvent{
		ID:         o.idGen.Generate(),
		SessionID:  sessionID,
		Type:       eventType,
		InstanceID: item.InstanceID,
		ItemID:     item.ID,
		OccurredAt: o.clock.Now(),
	}
}

// deckFor returns the deck a card instance belongs to
func deckFor(m *session.Mutation, instanceID string) (*weapons.DeckState, *weapons.CardDefinition, error) {
	def, ok := m.Catalog.DefinitionOf(instanceID)
	if !ok {
		return nil, nil, errors.CatalogInconsistencyf("instance %s is not in the catalog", instanceID)
	}
	deck, ok := m.State.Deck(def.Tier)
	if !ok {
		return nil, nil, errors.FailedPreconditionf("%s deck has not been built for session %s", def.Tier, m.State.SessionID)
	}
	return deck, def, nil
}

// take moves a card out of its deck's recent draws or discard pile and
// wraps it in a new item that is not yet placed
func (o *orchestrator) take(m *session.Mutation, instanceID string) (*weapons.InventoryItem, error) {
	if _, held := m.State.Inventory.FindInstance(instanceID); held {
		return nil, errors.FailedPreconditionf("instance %s is already in the inventory", instanceID)
	}

	deck, def, err := deckFor(m, instanceID)
	if err != nil {
		return nil, err
	}
	if _, ok := deck.Take(instanceID); !ok {
		return nil, errors.FailedPreconditionf("instance %s was not drawn or discarded (it is in %s)",
			instanceID, pileName(deck.Locate(instanceID)))
	}

	return &weapons.InventoryItem{
		ID:         o.idGen.Generate(),
		SessionID:  m.State.SessionID,
		InstanceID: instanceID,
		Tier:       def.Tier,
		AddedAt:    o.clock.Now(),
	}, nil
}

func pileName(p weapons.Pile) string {
	if p == weapons.PileNone {
		return "no pile"
	}
	return string(p)
}

// release returns a removed item's card to its deck
func release(m *session.Mutation, item *weapons.InventoryItem, discardToDeck bool) error {
	deck, ok := m.State.Deck(item.Tier)
	if !ok {
		return errors.CatalogInconsistencyf("item %s came from the %s deck, which session %s does not have",
			item.ID, item.Tier, m.State.SessionID)
	}
	if discardToDeck {
		deck.PushDiscard(item.InstanceID)
	} else {
		deck.PushSetAside(item.InstanceID)
	}
	return nil
}

func (o *orchestrator) add(ctx context.Context, input *AddInput, slot weapons.SlotType) (*AddOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.SessionID == "" {
		vb.RequiredField("session_id")
	}
	if input.InstanceID == "" {
		vb.RequiredField("instance_id")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &AddOutput{}
	_, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			out.Capacity = m.State.Settings.Capacity(slot)
			if m.State.Inventory.Count(slot) >= out.Capacity {
				out.Status = StatusSlotFull
				m.Unchanged()
				return nil
			}

			item, err := o.take(m, input.InstanceID)
			if err != nil {
				return err
			}
			m.State.Inventory.Place(item, slot)

			event := o.newEvent(m.State.SessionID, weapons.EventTypeAdd, item)
			event.To = slotRef(item)
			m.Record(event)
			m.Announce(session.EventInventoryChange, item, map[string]any{"type": string(weapons.EventTypeAdd)})

			out.Status = StatusOK
			out.Item = item
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Weapon added to inventory",
		"session_id", input.SessionID,
		"instance_id", input.InstanceID,
		"slot_type", slot,
		"status", out.Status,
	)
	return out, nil
}

// AddToActive takes a drawn or discarded card into an active slot
func (o *orchestrator) AddToActive(ctx context.Context, input *AddInput) (*AddOutput, error) {
	return o.add(ctx, input, weapons.SlotTypeActive)
}

// AddToBackpack takes a drawn or discarded card into the backpack
func (o *orchestrator) AddToBackpack(ctx context.Context, input *AddInput) (*AddOutput, error) {
	return o.add(ctx, input, weapons.SlotTypeBackpack)
}

// Remove drops an item, returning its card to the deck
func (o *orchestrator) Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.SessionID == "" {
		vb.RequiredField("session_id")
	}
	if input.ItemID == "" {
		vb.RequiredField("item_id")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &RemoveOutput{}
	_, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			current, ok := m.State.Inventory.Find(input.ItemID)
			if !ok {
				return errors.NotFoundf("item %s not found in session %s", input.ItemID, input.SessionID)
			}
			from := slotRef(current)

			item, _ := m.State.Inventory.Remove(input.ItemID)
			if err := release(m, item, input.DiscardToDeck); err != nil {
				return err
			}

			event := o.newEvent(m.State.SessionID, weapons.EventTypeRemove, item)
			event.From = from
			event.DiscardedToDeck = input.DiscardToDeck
			m.Record(event)
			m.Announce(session.EventInventoryChange, item, map[string]any{"type": string(weapons.EventTypeRemove)})

			out.Item = item
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Weapon removed from inventory",
		"session_id", input.SessionID,
		"item_id", input.ItemID,
		"discard_to_deck", input.DiscardToDeck,
	)
	return out, nil
}

func (o *orchestrator) move(ctx context.Context, input *MoveInput, from weapons.SlotType) (*MoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.SessionID == "" {
		vb.RequiredField("session_id")
	}
	if input.ItemID == "" {
		vb.RequiredField("item_id")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	to := from.Other()
	out := &MoveOutput{}
	_, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			current, ok := m.State.Inventory.Find(input.ItemID)
			if !ok {
				return errors.NotFoundf("item %s not found in session %s", input.ItemID, input.SessionID)
			}
			if current.SlotType != from {
				return errors.FailedPreconditionf("item %s is in %s, not %s", input.ItemID, current.SlotType, from)
			}

			out.Capacity = m.State.Settings.Capacity(to)
			if m.State.Inventory.Count(to) >= out.Capacity {
				out.Status = StatusSlotFull
				m.Unchanged()
				return nil
			}

			fromRef := slotRef(current)
			item, _ := m.State.Inventory.Move(input.ItemID, to)

			event := o.newEvent(m.State.SessionID, weapons.EventTypeMove, item)
			event.From = fromRef
			event.To = slotRef(item)
			m.Record(event)
			m.Announce(session.EventInventoryChange, item, map[string]any{"type": string(weapons.EventTypeMove)})

			out.Status = StatusOK
			out.Item = item
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// MoveActiveToBackpack moves an active item into the backpack
func (o *orchestrator) MoveActiveToBackpack(ctx context.Context, input *MoveInput) (*MoveOutput, error) {
	return o.move(ctx, input, weapons.SlotTypeActive)
}

// MoveBackpackToActive moves a backpack item into an active slot
func (o *orchestrator) MoveBackpackToActive(ctx context.Context, input *MoveInput) (*MoveOutput, error) {
	return o.move(ctx, input, weapons.SlotTypeBackpack)
}

// ReplaceWeapon removes one item and puts a new card in its slot
func (o *orchestrator) ReplaceWeapon(ctx context.Context, input *ReplaceInput) (*ReplaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.SessionID == "" {
		vb.RequiredField("session_id")
	}
	if input.OldItemID == "" {
		vb.RequiredField("old_item_id")
	}
	if input.NewInstanceID == "" {
		vb.RequiredField("new_instance_id")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &ReplaceOutput{}
	_, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			current, ok := m.State.Inventory.Find(input.OldItemID)
			if !ok {
				return errors.NotFoundf("item %s not found in session %s", input.OldItemID, input.SessionID)
			}
			if current.InstanceID == input.NewInstanceID {
				return errors.InvalidArgument("cannot replace a weapon with itself")
			}
			slot := slotRef(current)

			// Take the new card first so a card that is not available fails
			// before the old one is touched.
			added, err := o.take(m, input.NewInstanceID)
			if err != nil {
				return err
			}

			removed, _ := m.State.Inventory.Remove(input.OldItemID)
			if err := release(m, removed, input.DiscardOldToDeck); err != nil {
				return err
			}
			m.State.Inventory.PlaceAt(added, slot.SlotType, slot.Index)

			group := o.idGen.Generate()
			leaving := o.newEvent(m.State.SessionID, weapons.EventTypeReplace, removed)
			leaving.From = slot
			leaving.ReplaceGroup = group
			leaving.DiscardedToDeck = input.DiscardOldToDeck

			entering := o.newEvent(m.State.SessionID, weapons.EventTypeReplace, added)
			entering.To = slotRef(added)
			entering.ReplaceGroup = group

			m.Record(leaving)
			m.Record(entering)
			m.Announce(session.EventInventoryChange, added, map[string]any{
				"type":         string(weapons.EventTypeReplace),
				"replaced_id":  removed.InstanceID,
				"replace_with": added.InstanceID,
			})

			out.Removed = removed
			out.Added = added
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Weapon replaced",
		"session_id", input.SessionID,
		"old_instance_id", out.Removed.InstanceID,
		"new_instance_id", out.Added.InstanceID,
		"slot_type", out.Added.SlotType,
	)
	return out, nil
}

func held(catalog *weapons.Catalog, items []*weapons.InventoryItem) ([]*HeldWeapon, error) {
	out := make([]*HeldWeapon, 0, len(items))
	for _, item := range items {
		def, ok := catalog.DefinitionOf(item.InstanceID)
		if !ok {
			return nil, errors.CatalogInconsistencyf("held instance %s is not in the catalog", item.InstanceID)
		}
		c := *item
		out = append(out, &HeldWeapon{Item: &c, Definition: def})
	}
	return out, nil
}

func (o *orchestrator) read(ctx context.Context, sessionID string) (*session.ReadOutput, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	return o.sessions.Read(ctx, &session.ReadInput{SessionID: sessionID})
}

// GetInventory returns both slot types with card definitions
func (o *orchestrator) GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	read, err := o.read(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	inv := read.State.Inventory
	active, err := held(read.Catalog, inv.InSlot(weapons.SlotTypeActive))
	if err != nil {
		return nil, err
	}
	backpack, err := held(read.Catalog, inv.InSlot(weapons.SlotTypeBackpack))
	if err != nil {
		return nil, err
	}

	settings := *read.State.Settings
	return &GetInventoryOutput{
		Active:           active,
		Backpack:         backpack,
		Settings:         &settings,
		ActiveCapacity:   settings.Capacity(weapons.SlotTypeActive),
		BackpackCapacity: settings.BackpackCapacity(),
	}, nil
}

// GetEffectiveActiveWeapons returns what counts as active for game rules
func (o *orchestrator) GetEffectiveActiveWeapons(ctx context.Context, input *GetEffectiveActiveWeaponsInput) (*GetEffectiveActiveWeaponsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	read, err := o.read(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	all := read.State.Settings.AllInventoryActive
	active, err := held(read.Catalog, read.State.Inventory.EffectiveActive(all))
	if err != nil {
		return nil, err
	}

	return &GetEffectiveActiveWeaponsOutput{Weapons: active, AllInventoryActive: all}, nil
}

// IsAllInventoryActive reports the session's all-inventory-active modifier
func (o *orchestrator) IsAllInventoryActive(ctx context.Context, input *IsAllInventoryActiveInput) (*IsAllInventoryActiveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	read, err := o.read(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &IsAllInventoryActiveOutput{AllInventoryActive: read.State.Settings.AllInventoryActive}, nil
}

// SetAllInventoryActive toggles the all-inventory-active modifier
func (o *orchestrator) SetAllInventoryActive(ctx context.Context, input *SetAllInventoryActiveInput) (*SetAllInventoryActiveOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			if m.State.Settings.AllInventoryActive == input.AllInventoryActive {
				m.Unchanged()
				return nil
			}
			m.State.Settings.AllInventoryActive = input.AllInventoryActive
			m.State.Settings.UpdatedAt = o.clock.Now()
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	settings := *result.State.Settings
	return &SetAllInventoryActiveOutput{Settings: &settings}, nil
}

// SetBonusSlots changes how many extra backpack slots the session has
func (o *orchestrator) SetBonusSlots(ctx context.Context, input *SetBonusSlotsInput) (*SetBonusSlotsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.SessionID == "" {
		vb.RequiredField("session_id")
	}
	vb.Range("bonus_slots", input.BonusSlots, 0, weapons.MaxBonusSlots)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			capacity := weapons.BaseBackpackCapacity + input.BonusSlots
			if used := m.State.Inventory.Count(weapons.SlotTypeBackpack); used > capacity {
				return errors.FailedPreconditionf(
					"backpack holds %d items; empty it before shrinking capacity to %d", used, capacity)
			}
			m.State.Settings.BonusSlots = input.BonusSlots
			m.State.Settings.UpdatedAt = o.clock.Now()
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	settings := *result.State.Settings
	return &SetBonusSlotsOutput{Settings: &settings, BackpackCapacity: settings.BackpackCapacity()}, nil
}

// GetHistory returns the inventory event log newest first
func (o *orchestrator) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	out, err := o.sessions.History(ctx, &session.HistoryInput{SessionID: input.SessionID, Limit: input.Limit})
	if err != nil {
		return nil, err
	}

	return &GetHistoryOutput{Events: out.Events}, nil
}
