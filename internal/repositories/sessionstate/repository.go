// Package sessionstate provides the repository for per-session deck,
// inventory and customization state
package sessionstate

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionstatemock github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate Repository

import (
	"context"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// Repository stores one SessionState document per session plus an
// append-only inventory event log
type Repository interface {
	// Get retrieves the state for a session
	// Returns errors.NotFound if the session has never been saved
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save writes the state and appends events in one transaction. The
	// write only succeeds if the stored version still equals
	// ExpectedVersion.
	// Returns errors.Aborted when another writer got there first
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// ListEvents returns the event log newest first
	ListEvents(ctx context.Context, input ListEventsInput) (*ListEventsOutput, error)

	// Delete removes the state and the event log
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns the id of every stored session, sorted
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the input for loading a session
type GetInput struct {
	SessionID string
}

// GetOutput defines the output for loading a session
type GetOutput struct {
	State *weapons.SessionState
}

// SaveInput defines the input for saving a session
type SaveInput struct {
	State *weapons.SessionState
	// ExpectedVersion is the version the caller loaded; 0 for a new session
	ExpectedVersion int64
	// Events are appended in order, so the last one becomes the newest
	Events []*weapons.InventoryEvent
}

// SaveOutput defines the output for saving a session
type SaveOutput struct {
	Version int64
}

// ListEventsInput defines the input for reading the event log
type ListEventsInput struct {
	SessionID string
	// Limit caps the number of events; 0 returns all of them
	Limit int
}

// ListEventsOutput defines the output for reading the event log
type ListEventsOutput struct {
	Events []*weapons.InventoryEvent
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct {
	Existed bool
}

// ListInput defines the input for listing stored sessions
type ListInput struct{}

// ListOutput defines the output for listing stored sessions
type ListOutput struct {
	SessionIDs []string
}
