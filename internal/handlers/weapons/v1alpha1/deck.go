package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/deck"
)

// Card is a drawn card with its definition attached
type Card struct {
	InstanceID string                  `json:"instance_id"`
	Definition *weapons.CardDefinition `json:"definition"`
}

// DeckRequest names one tier's deck in a session
type DeckRequest struct {
	SessionID string       `json:"session_id"`
	Tier      weapons.Tier `json:"tier"`
}

// BuildDeckResponse carries a freshly built or existing deck
type BuildDeckResponse struct {
	Deck   *weapons.DeckState `json:"deck"`
	Built  bool               `json:"built"`
	Report shuffle.Report     `json:"report"`
}

// ResetDecksRequest asks for one or every deck to be rebuilt
type ResetDecksRequest struct {
	SessionID string       `json:"session_id"`
	Tier      weapons.Tier `json:"tier,omitempty"`
	// PresetID switches the session's preset first when present; an empty
	// value switches back to the default
	PresetID *string `json:"preset_id,omitempty"`
}

// ResetDecksResponse carries the rebuilt decks
type ResetDecksResponse struct {
	Decks []*weapons.DeckState `json:"decks"`
}

// DrawResponse carries one drawn card, if any was left
type DrawResponse struct {
	Card       *Card              `json:"card,omitempty"`
	Reshuffled bool               `json:"reshuffled"`
	Deck       *weapons.DeckState `json:"deck"`
}

// DrawTwoResponse carries up to two drawn cards
type DrawTwoResponse struct {
	Cards      []*Card            `json:"cards"`
	Reshuffles int                `json:"reshuffles"`
	Deck       *weapons.DeckState `json:"deck"`
}

// DiscardRequest names a card to put on its deck's discard pile
type DiscardRequest struct {
	SessionID  string       `json:"session_id"`
	Tier       weapons.Tier `json:"tier"`
	InstanceID string       `json:"instance_id"`
}

// DeckResponse carries a deck after a change
type DeckResponse struct {
	Deck *weapons.DeckState `json:"deck"`
}

// ShuffleResponse carries the reshuffled deck
type ShuffleResponse struct {
	Deck   *weapons.DeckState `json:"deck"`
	Report shuffle.Report     `json:"report"`
}

// ReclaimDiscardRequest asks for the discard pile to go back into the deck
type ReclaimDiscardRequest struct {
	SessionID string       `json:"session_id"`
	Tier      weapons.Tier `json:"tier"`
	Shuffle   bool         `json:"shuffle,omitempty"`
}

// ReclaimDiscardResponse reports how many cards came back
type ReclaimDiscardResponse struct {
	Reclaimed int                `json:"reclaimed"`
	Deck      *weapons.DeckState `json:"deck"`
}

// GetRecentDrawsResponse carries the recent draw buffer, newest first
type GetRecentDrawsResponse struct {
	Cards []*Card `json:"cards"`
}

// GetDeckResponse carries a deck and how much of it is held
type GetDeckResponse struct {
	Deck        *weapons.DeckState `json:"deck"`
	InInventory int                `json:"in_inventory"`
}

// EndSessionRequest names a session to drop
type EndSessionRequest struct {
	SessionID string `json:"session_id"`
}

// EndSessionResponse reports whether there was anything to drop
type EndSessionResponse struct {
	Existed bool `json:"existed"`
}

var deckServiceDesc = serviceDesc(DeckServiceName,
	unary(DeckServiceName, "BuildDeck", (*Handler).BuildDeck),
	unary(DeckServiceName, "ResetDecks", (*Handler).ResetDecks),
	unary(DeckServiceName, "Draw", (*Handler).Draw),
	unary(DeckServiceName, "DrawTwo", (*Handler).DrawTwo),
	unary(DeckServiceName, "Discard", (*Handler).Discard),
	unary(DeckServiceName, "Shuffle", (*Handler).Shuffle),
	unary(DeckServiceName, "ReclaimDiscard", (*Handler).ReclaimDiscard),
	unary(DeckServiceName, "GetRecentDraws", (*Handler).GetRecentDraws),
	unary(DeckServiceName, "GetDeck", (*Handler).GetDeck),
	unary(DeckServiceName, "EndSession", (*Handler).EndSession),
)

func validateDeckRequest(sessionID string, tier weapons.Tier) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if !tier.IsValid() {
		return errors.ToGRPCError(errors.InvalidArgumentf("unknown tier %q", tier))
	}
	return nil
}

func toCard(c *deck.DrawnCard) *Card {
	if c == nil {
		return nil
	}
	return &Card{InstanceID: c.InstanceID, Definition: c.Definition}
}

func toCards(cards []*deck.DrawnCard) []*Card {
	result := make([]*Card, 0, len(cards))
	for _, c := range cards {
		result = append(result, toCard(c))
	}
	return result
}

// BuildDeck builds a tier's deck unless the session already has one
func (h *Handler) BuildDeck(ctx context.Context, req *DeckRequest) (*BuildDeckResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}

	out, err := h.deckService.BuildDeck(ctx, &deck.BuildDeckInput{
		SessionID: req.SessionID,
		Tier:      req.Tier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &BuildDeckResponse{Deck: out.Deck, Built: out.Built, Report: out.Report}, nil
}

// ResetDecks rebuilds decks from the current catalog and customizations
func (h *Handler) ResetDecks(ctx context.Context, req *ResetDecksRequest) (*ResetDecksResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}
	if req.Tier != "" && !req.Tier.IsValid() {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown tier %q", req.Tier))
	}

	out, err := h.deckService.Reset(ctx, &deck.ResetInput{
		SessionID:    req.SessionID,
		Tier:         req.Tier,
		SelectPreset: req.PresetID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ResetDecksResponse{Decks: out.Decks}, nil
}

// Draw takes the top card of a deck
func (h *Handler) Draw(ctx context.Context, req *DeckRequest) (*DrawResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}

	out, err := h.deckService.Draw(ctx, &deck.DrawInput{SessionID: req.SessionID, Tier: req.Tier})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DrawResponse{
		Card:       toCard(out.Card),
		Reshuffled: out.Reshuffled,
		Deck:       out.Deck,
	}, nil
}

// DrawTwo takes up to two cards in a single change
func (h *Handler) DrawTwo(ctx context.Context, req *DeckRequest) (*DrawTwoResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}

	out, err := h.deckService.DrawTwo(ctx, &deck.DrawTwoInput{SessionID: req.SessionID, Tier: req.Tier})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DrawTwoResponse{
		Cards:      toCards(out.Cards),
		Reshuffles: out.Reshuffles,
		Deck:       out.Deck,
	}, nil
}

// Discard moves a drawn or set-aside card onto the discard pile
func (h *Handler) Discard(ctx context.Context, req *DiscardRequest) (*DeckResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}
	if req.InstanceID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("instance_id is required"))
	}

	out, err := h.deckService.Discard(ctx, &deck.DiscardInput{
		SessionID:  req.SessionID,
		Tier:       req.Tier,
		InstanceID: req.InstanceID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DeckResponse{Deck: out.Deck}, nil
}

// Shuffle reorders the remaining cards
func (h *Handler) Shuffle(ctx context.Context, req *DeckRequest) (*ShuffleResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}

	out, err := h.deckService.Shuffle(ctx, &deck.ShuffleInput{SessionID: req.SessionID, Tier: req.Tier})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ShuffleResponse{Deck: out.Deck, Report: out.Report}, nil
}

// ReclaimDiscard folds the discard pile back under the remaining cards
func (h *Handler) ReclaimDiscard(ctx context.Context, req *ReclaimDiscardRequest) (*ReclaimDiscardResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}

	out, err := h.deckService.ReclaimAllDiscardIntoDeck(ctx, &deck.ReclaimInput{
		SessionID: req.SessionID,
		Tier:      req.Tier,
		Shuffle:   req.Shuffle,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ReclaimDiscardResponse{Reclaimed: out.Reclaimed, Deck: out.Deck}, nil
}

// GetRecentDraws returns the recent draw buffer
func (h *Handler) GetRecentDraws(ctx context.Context, req *DeckRequest) (*GetRecentDrawsResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}

	out, err := h.deckService.GetRecentDraws(ctx, &deck.GetRecentDrawsInput{
		SessionID: req.SessionID,
		Tier:      req.Tier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetRecentDrawsResponse{Cards: toCards(out.Cards)}, nil
}

// GetDeck returns a deck's piles
func (h *Handler) GetDeck(ctx context.Context, req *DeckRequest) (*GetDeckResponse, error) {
	if err := validateDeckRequest(req.SessionID, req.Tier); err != nil {
		return nil, err
	}

	out, err := h.deckService.GetDeck(ctx, &deck.GetDeckInput{SessionID: req.SessionID, Tier: req.Tier})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetDeckResponse{Deck: out.Deck, InInventory: out.InInventory}, nil
}

// EndSession drops everything a session holds
func (h *Handler) EndSession(ctx context.Context, req *EndSessionRequest) (*EndSessionResponse, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	out, err := h.deckService.EndSession(ctx, &deck.EndSessionInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &EndSessionResponse{Existed: out.Existed}, nil
}
