package weapons

import "github.com/KirkDiggler/rpg-toolkit/core"

// SessionState is everything the engine persists for one play session
// except the event log. Version increases on every committed write.
type SessionState struct {
	SessionID string              `json:"session_id"`
	Version   int64               `json:"version"`
	Settings  *SessionSettings    `json:"settings"`
	Decks     map[Tier]*DeckState `json:"decks"`
	Inventory *Inventory          `json:"inventory"`
	Override  *SessionOverride    `json:"override"`
}

// NewSessionState returns an empty session with default settings
func NewSessionState(sessionID string) *SessionState {
	s := &SessionState{SessionID: sessionID}
	s.Normalize()
	return s
}

// Normalize fills every missing container with its empty default. A null
// deck entry means the tier was never built and is dropped.
func (s *SessionState) Normalize() {
	if s.Settings == nil {
		s.Settings = &SessionSettings{SessionID: s.SessionID}
	}
	if s.Decks == nil {
		s.Decks = make(map[Tier]*DeckState)
	}
	for tier, deck := range s.Decks {
		if deck == nil {
			delete(s.Decks, tier)
			continue
		}
		deck.Normalize()
	}
	if s.Inventory == nil {
		s.Inventory = &Inventory{}
	}
	s.Inventory.Normalize()
	if s.Override == nil {
		s.Override = &SessionOverride{SessionID: s.SessionID}
	}
	s.Override.Normalize()
}

// Deck returns the deck state for a tier, if built
func (s *SessionState) Deck(tier Tier) (*DeckState, bool) {
	d, ok := s.Decks[tier]
	return d, ok
}

// GetID returns the session ID
func (s *SessionState) GetID() string {
	return s.SessionID
}

// GetType returns the entity type for rpg-toolkit
func (s *SessionState) GetType() string {
	return "game_session"
}

var _ core.Entity = (*SessionState)(nil)
