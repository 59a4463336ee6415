package weapons

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// MaxRecentDraws bounds the recent-draws buffer
const MaxRecentDraws = 3

// Pile names the list of a deck state holding a card
type Pile string

// Piles
const (
	PileNone        Pile = ""
	PileRemaining   Pile = "remaining"
	PileDiscard     Pile = "discard"
	PileRecentDraws Pile = "recent_draws"
	PileSetAside    Pile = "set_aside"
)

// DeckState is the persisted runtime state of one (session, tier) deck.
//
// Remaining is ordered top first, Discard and RecentDraws most recent first.
// RecentDraws are drawn cards the player has not yet discarded or stored.
// SetAside holds cards that left the inventory without going back to the
// deck. Size is the composed deck size at the last build; every card of the
// composition is in exactly one list or in the session inventory.
type DeckState struct {
	SessionID      string    `json:"session_id"`
	Tier           Tier      `json:"tier"`
	Remaining      []string  `json:"remaining"`
	Discard        []string  `json:"discard"`
	RecentDraws    []string  `json:"recent_draws"`
	SetAside       []string  `json:"set_aside"`
	Size           int       `json:"size"`
	LastShuffledAt time.Time `json:"last_shuffled_at"`
	BuiltAt        time.Time `json:"built_at"`
}

// NewDeckState returns a freshly built deck with the given order on top
func NewDeckState(sessionID string, tier Tier, ordered []string, now time.Time) *DeckState {
	remaining := make([]string, len(ordered))
	copy(remaining, ordered)
	return &DeckState{
		SessionID:      sessionID,
		Tier:           tier,
		Remaining:      remaining,
		Discard:        []string{},
		RecentDraws:    []string{},
		SetAside:       []string{},
		Size:           len(ordered),
		LastShuffledAt: now,
		BuiltAt:        now,
	}
}

// Normalize replaces nil lists with empty ones
func (d *DeckState) Normalize() {
	if d.Remaining == nil {
		d.Remaining = []string{}
	}
	if d.Discard == nil {
		d.Discard = []string{}
	}
	if d.RecentDraws == nil {
		d.RecentDraws = []string{}
	}
	if d.SetAside == nil {
		d.SetAside = []string{}
	}
}

// IsExhausted reports whether nothing remains to draw without a reclaim
func (d *DeckState) IsExhausted() bool {
	return len(d.Remaining) == 0
}

// Clone returns a deep copy
func (d *DeckState) Clone() *DeckState {
	c := *d
	c.Remaining = append([]string{}, d.Remaining...)
	c.Discard = append([]string{}, d.Discard...)
	c.RecentDraws = append([]string{}, d.RecentDraws...)
	c.SetAside = append([]string{}, d.SetAside...)
	return &c
}

// PopTop removes the top card and records it as the most recent draw. When
// the draw buffer overflows, the oldest draw goes to the front of discard.
func (d *DeckState) PopTop() (string, bool) {
	if len(d.Remaining) == 0 {
		return "", false
	}
	id := d.Remaining[0]
	d.Remaining = d.Remaining[1:]

	d.RecentDraws = prepend(d.RecentDraws, id)
	if len(d.RecentDraws) > MaxRecentDraws {
		oldest := d.RecentDraws[len(d.RecentDraws)-1]
		d.RecentDraws = d.RecentDraws[:len(d.RecentDraws)-1]
		d.Discard = prepend(d.Discard, oldest)
	}
	return id, true
}

// PushDiscard puts a card on the front of discard, clearing it from the draw
// buffer if it was there
func (d *DeckState) PushDiscard(id string) {
	d.RecentDraws = lo.Without(d.RecentDraws, id)
	d.Discard = prepend(d.Discard, id)
}

// PushSetAside parks a card outside the draw cycle
func (d *DeckState) PushSetAside(id string) {
	d.SetAside = prepend(d.SetAside, id)
}

// ReclaimDiscard appends the discard pile under the remaining cards and
// returns how many moved
func (d *DeckState) ReclaimDiscard() int {
	n := len(d.Discard)
	d.Remaining = append(d.Remaining, d.Discard...)
	d.Discard = []string{}
	return n
}

// Take removes a card from RecentDraws or Discard, the only piles a card may
// leave for the inventory
func (d *DeckState) Take(id string) (Pile, bool) {
	switch d.Locate(id) {
	case PileRecentDraws:
		d.RecentDraws = lo.Without(d.RecentDraws, id)
		return PileRecentDraws, true
	case PileDiscard:
		d.Discard = lo.Without(d.Discard, id)
		return PileDiscard, true
	default:
		return PileNone, false
	}
}

// Locate returns the pile holding the card
func (d *DeckState) Locate(id string) Pile {
	switch {
	case lo.Contains(d.Remaining, id):
		return PileRemaining
	case lo.Contains(d.Discard, id):
		return PileDiscard
	case lo.Contains(d.RecentDraws, id):
		return PileRecentDraws
	case lo.Contains(d.SetAside, id):
		return PileSetAside
	default:
		return PileNone
	}
}

// Held is the number of cards accounted for in the deck's own lists
func (d *DeckState) Held() int {
	return len(d.Remaining) + len(d.Discard) + len(d.RecentDraws) + len(d.SetAside)
}

// Validate checks that every id is a known instance of this tier, that the
// lists are disjoint, and that together with inInventory cards held by the
// session inventory the deck still adds up to Size.
func (d *DeckState) Validate(catalog *Catalog, inInventory int) error {
	seen := make(map[string]Pile, d.Held())
	piles := []struct {
		pile Pile
		ids  []string
	}{
		{PileRemaining, d.Remaining},
		{PileDiscard, d.Discard},
		{PileRecentDraws, d.RecentDraws},
		{PileSetAside, d.SetAside},
	}

	for _, p := range piles {
		for _, id := range p.ids {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("instance %s appears in both %s and %s", id, prev, p.pile)
			}
			seen[id] = p.pile

			def, ok := catalog.DefinitionOf(id)
			if !ok {
				return fmt.Errorf("instance %s in %s has no definition", id, p.pile)
			}
			if def.Tier != d.Tier {
				return fmt.Errorf("instance %s in %s belongs to tier %s, not %s", id, p.pile, def.Tier, d.Tier)
			}
		}
	}

	if got := d.Held() + inInventory; got != d.Size {
		return fmt.Errorf("deck %s holds %d cards (%d in inventory), expected %d", d.Tier, got, inInventory, d.Size)
	}
	return nil
}

func prepend(list []string, id string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, id)
	return append(out, list...)
}
