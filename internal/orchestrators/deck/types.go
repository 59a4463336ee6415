package deck

import (
	"github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

// DrawnCard is a card handed to the player with its definition attached
type DrawnCard struct {
	InstanceID string
	Definition *weapons.CardDefinition
}

// BuildDeckInput defines the request for building a tier's deck
type BuildDeckInput struct {
	SessionID string
	Tier      weapons.Tier
}

// BuildDeckOutput defines the response for building a tier's deck
type BuildDeckOutput struct {
	Deck *weapons.DeckState
	// Built is false when the deck already existed and was left alone
	Built bool
	// Report lists shuffle rules the order could not satisfy
	Report shuffle.Report
}

// ResetInput defines the request for rebuilding decks
type ResetInput struct {
	SessionID string
	// Tier to rebuild; empty rebuilds every deck the session has built
	Tier weapons.Tier
	// SelectPreset, when set, switches the session's preset before
	// rebuilding. An empty string selects the default preset.
	SelectPreset *string
}

// ResetOutput defines the response for rebuilding decks
type ResetOutput struct {
	Decks []*weapons.DeckState
}

// DrawInput defines the request for drawing one card
type DrawInput struct {
	SessionID string
	Tier      weapons.Tier
}

// DrawOutput defines the response for drawing one card
type DrawOutput struct {
	// Card is nil when remaining and discard are both empty
	Card *DrawnCard
	// Reshuffled is true when the discard pile was folded back in first
	Reshuffled bool
	Deck       *weapons.DeckState
}

// DrawTwoInput defines the request for drawing two cards
type DrawTwoInput struct {
	SessionID string
	Tier      weapons.Tier
}

// DrawTwoOutput defines the response for drawing two cards
type DrawTwoOutput struct {
	// Cards holds zero, one or two cards
	Cards      []*DrawnCard
	Reshuffles int
	Deck       *weapons.DeckState
}

// DiscardInput defines the request for discarding a card
type DiscardInput struct {
	SessionID  string
	Tier       weapons.Tier
	InstanceID string
}

// DiscardOutput defines the response for discarding a card
type DiscardOutput struct {
	Deck *weapons.DeckState
}

// ShuffleInput defines the request for shuffling the remaining cards
type ShuffleInput struct {
	SessionID string
	Tier      weapons.Tier
}

// ShuffleOutput defines the response for shuffling the remaining cards
type ShuffleOutput struct {
	Deck   *weapons.DeckState
	Report shuffle.Report
}

// ReclaimInput defines the request for folding discard back into the deck
type ReclaimInput struct {
	SessionID string
	Tier      weapons.Tier
	Shuffle   bool
}

// ReclaimOutput defines the response for folding discard back into the deck
type ReclaimOutput struct {
	Reclaimed int
	Deck      *weapons.DeckState
}

// GetRecentDrawsInput defines the request for the recent draw buffer
type GetRecentDrawsInput struct {
	SessionID string
	Tier      weapons.Tier
}

// GetRecentDrawsOutput defines the response for the recent draw buffer
type GetRecentDrawsOutput struct {
	// Cards are ordered most recent first
	Cards []*DrawnCard
}

// GetDeckInput defines the request for reading a deck
type GetDeckInput struct {
	SessionID string
	Tier      weapons.Tier
}

// GetDeckOutput defines the response for reading a deck
type GetDeckOutput struct {
	Deck *weapons.DeckState
	// InInventory is how many of the deck's cards the session inventory holds
	InInventory int
}

// EndSessionInput defines the request for ending a session
type EndSessionInput struct {
	SessionID string
}

// EndSessionOutput defines the response for ending a session
type EndSessionOutput struct {
	Existed bool
}
