// Package session provides the unit of work every deck and inventory
// operation runs in: lock the session, load and check its state, apply a
// change, commit it atomically, then announce what happened.
package session

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/weapon-deck-api/internal/services/session Service

// Event types published on the event bus after a commit
const (
	EventDeckBuilt       = "deck.built"
	EventDeckDrawn       = "deck.drawn"
	EventDeckDiscarded   = "deck.discarded"
	EventDeckReshuffled  = "deck.reshuffled"
	EventInventoryChange = "inventory.changed"
	EventSessionEnded    = "session.ended"
)

// EventTypes lists every event type the store publishes
func EventTypes() []string {
	return []string{
		EventDeckBuilt,
		EventDeckDrawn,
		EventDeckDiscarded,
		EventDeckReshuffled,
		EventInventoryChange,
		EventSessionEnded,
	}
}

// Service defines the session unit of work
type Service interface {
	// Read loads a session without taking the lock. A session that was
	// never saved comes back empty with version 0.
	// Returns errors.CatalogInconsistency if stored decks disagree with the catalog
	Read(ctx context.Context, input *ReadInput) (*ReadOutput, error)

	// Update runs Apply on the session under its lock and commits the result
	// together with any recorded inventory events. Nothing is written when
	// Apply fails or marks the mutation unchanged.
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Delete drops the session state, its override and its event log
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// History returns the inventory event log newest first
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)
}

// ReadInput contains the session to load
type ReadInput struct {
	SessionID string
}

// ReadOutput contains the loaded session
type ReadOutput struct {
	State   *weapons.SessionState
	Catalog *weapons.Catalog
}

// ApplyFunc mutates the state held by m
type ApplyFunc func(ctx context.Context, m *Mutation) error

// UpdateInput contains the session and the change to apply
type UpdateInput struct {
	SessionID string
	Apply     ApplyFunc
}

// UpdateOutput contains the state after the update
type UpdateOutput struct {
	State     *weapons.SessionState
	Committed bool
}

// DeleteInput contains the session to delete
type DeleteInput struct {
	SessionID string
}

// DeleteOutput reports whether anything was stored
type DeleteOutput struct {
	Existed bool
}

// HistoryInput contains the event log query
type HistoryInput struct {
	SessionID string
	Limit     int
}

// HistoryOutput contains the event log
type HistoryOutput struct {
	Events []*weapons.InventoryEvent
}

type notice struct {
	eventType string
	target    core.Entity
	data      map[string]any
}

// Mutation is the working copy handed to an ApplyFunc
type Mutation struct {
	State   *weapons.SessionState
	Catalog *weapons.Catalog

	events    []*weapons.InventoryEvent
	notices   []notice
	unchanged bool
}

// Record appends an inventory event to be written with the state
func (m *Mutation) Record(event *weapons.InventoryEvent) {
	m.events = append(m.events, event)
}

// Announce queues a bus event published once the commit succeeds
func (m *Mutation) Announce(eventType string, target core.Entity, data map[string]any) {
	m.notices = append(m.notices, notice{eventType: eventType, target: target, data: data})
}

// Unchanged marks the mutation as a no-op so nothing is written
func (m *Mutation) Unchanged() {
	m.unchanged = true
}

// Events returns the inventory events recorded so far
func (m *Mutation) Events() []*weapons.InventoryEvent {
	return m.events
}
