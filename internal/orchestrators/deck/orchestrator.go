// Package deck implements the deck service: building, drawing from,
// discarding to and reshuffling the three weapon decks of a session.
package deck

//go:generate mockgen -destination=mock/mock_service.go -package=deckmock github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/deck Service

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/clock"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
)

// Service defines the interface for deck operations
type Service interface {
	// BuildDeck composes and shuffles a tier's deck if the session has none yet
	BuildDeck(ctx context.Context, input *BuildDeckInput) (*BuildDeckOutput, error)

	// Reset throws away deck state and builds again from the current
	// composition
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// Draw takes the top card, folding discard back in first when the deck
	// is empty. Returns no card when both piles are empty.
	Draw(ctx context.Context, input *DrawInput) (*DrawOutput, error)

	// DrawTwo is two draws in a row
	DrawTwo(ctx context.Context, input *DrawTwoInput) (*DrawTwoOutput, error)

	// Discard puts a drawn or set-aside card on top of the discard pile
	Discard(ctx context.Context, input *DiscardInput) (*DiscardOutput, error)

	// Shuffle reorders the remaining cards without touching discard
	Shuffle(ctx context.Context, input *ShuffleInput) (*ShuffleOutput, error)

	// ReclaimAllDiscardIntoDeck moves the discard pile under the remaining
	// cards, optionally reshuffling. LastShuffledAt moves only when it
	// reshuffles; a plain reclaim leaves the order, and the timestamp, alone.
	ReclaimAllDiscardIntoDeck(ctx context.Context, input *ReclaimInput) (*ReclaimOutput, error)

	// GetRecentDraws returns the unresolved draws, most recent first
	GetRecentDraws(ctx context.Context, input *GetRecentDrawsInput) (*GetRecentDrawsOutput, error)

	// GetDeck returns a tier's deck state
	GetDeck(ctx context.Context, input *GetDeckInput) (*GetDeckOutput, error)

	// EndSession deletes every deck, the inventory and the session override
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)
}

// Config holds the dependencies for the deck orchestrator
type Config struct {
	Sessions session.Service
	Presets  presets.Repository
	Resolver composition.Resolver
	Shuffler shuffle.Shuffler
	Clock    clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Presets == nil {
		vb.RequiredField("Presets")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Shuffler == nil {
		vb.RequiredField("Shuffler")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	sessions session.Service
	presets  presets.Repository
	resolver composition.Resolver
	shuffler shuffle.Shuffler
	clock    clock.Clock
}

// NewOrchestrator creates a new deck orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		sessions: cfg.Sessions,
		presets:  cfg.Presets,
		resolver: cfg.Resolver,
		shuffler: cfg.Shuffler,
		clock:    cfg.Clock,
	}, nil
}

func validateTarget(sessionID string, tier weapons.Tier) error {
	vb := errors.NewValidationBuilder()
	if sessionID == "" {
		vb.RequiredField("session_id")
	}
	if !tier.IsValid() {
		vb.Fieldf("tier", "unknown tier %q", tier)
	}
	return vb.Build()
}

func requireDeck(state *weapons.SessionState, tier weapons.Tier) (*weapons.DeckState, error) {
	deck, ok := state.Deck(tier)
	if !ok {
		return nil, errors.NotFoundf("%s deck has not been built for session %s", tier, state.SessionID)
	}
	return deck, nil
}

// sessionPreset returns the preset the session selected, or the default
// preset when it selected none. A selected preset that no longer exists
// falls back to the default.
func (o *orchestrator) sessionPreset(ctx context.Context, presetID string) (*weapons.Preset, error) {
	if presetID != "" {
		out, err := o.presets.Get(ctx, presets.GetInput{ID: presetID})
		switch {
		case err == nil:
			return out.Preset, nil
		case errors.IsNotFound(err):
			slog.WarnContext(ctx, "Selected preset is gone, using default", "preset_id", presetID)
		default:
			return nil, errors.Wrapf(err, "failed to load preset %s", presetID)
		}
	}

	list, err := o.presets.List(ctx, presets.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list presets")
	}

	chosen, flagged := composition.DefaultPreset(list.Presets)
	if flagged > 1 {
		slog.WarnContext(ctx, "Several presets are marked default, using the most recently updated",
			"flagged", flagged,
			"preset_id", chosen.ID,
		)
	}
	return chosen, nil
}

// compose resolves and shuffles a fresh deck for the tier
func (o *orchestrator) compose(ctx context.Context, m *session.Mutation, tier weapons.Tier) (*weapons.DeckState, shuffle.Report, error) {
	preset, err := o.sessionPreset(ctx, m.State.Settings.PresetID)
	if err != nil {
		return nil, shuffle.Report{}, err
	}

	comp, err := o.resolver.Resolve(&composition.ResolveInput{
		Tier:     tier,
		Preset:   preset,
		Override: m.State.Override,
		Held:     m.State.Inventory.InstanceIDs(),
	})
	if err != nil {
		return nil, shuffle.Report{}, err
	}

	cards := make([]shuffle.Card, 0, len(comp.Instances))
	for _, inst := range comp.Instances {
		def, ok := m.Catalog.Definition(inst.DefinitionID)
		if !ok {
			return nil, shuffle.Report{}, errors.CatalogInconsistencyf(
				"instance %s references unknown definition %s", inst.ID, inst.DefinitionID)
		}
		cards = append(cards, shuffle.CardFromDefinition(inst.ID, def))
	}

	ordered, err := o.shuffler.Shuffle(cards)
	if err != nil {
		return nil, shuffle.Report{}, errors.Wrap(err, "failed to shuffle deck")
	}

	deck := weapons.NewDeckState(m.State.SessionID, tier, instanceIDs(ordered), o.clock.Now())
	deck.Size += m.State.Inventory.CountForTier(tier)

	report := shuffle.Violations(ordered)
	if report.Hard() > 0 {
		slog.WarnContext(ctx, "Deck order breaks shuffle rules",
			"session_id", m.State.SessionID,
			"tier", tier,
			"adjacent_same_name", report.AdjacentSameName,
			"adjacent_special", report.AdjacentSpecial,
			"special_in_head", report.SpecialInHead,
		)
	}

	return deck, report, nil
}

// reshuffle reorders the remaining pile with the shuffle engine
func (o *orchestrator) reshuffle(m *session.Mutation, deck *weapons.DeckState) (shuffle.Report, error) {
	cards := make([]shuffle.Card, 0, len(deck.Remaining))
	for _, id := range deck.Remaining {
		def, ok := m.Catalog.DefinitionOf(id)
		if !ok {
			return shuffle.Report{}, errors.CatalogInconsistencyf("instance %s has no definition", id)
		}
		cards = append(cards, shuffle.CardFromDefinition(id, def))
	}

	ordered, err := o.shuffler.Shuffle(cards)
	if err != nil {
		return shuffle.Report{}, errors.Wrap(err, "failed to shuffle deck")
	}

	deck.Remaining = instanceIDs(ordered)
	deck.LastShuffledAt = o.clock.Now()
	return shuffle.Violations(ordered), nil
}

func instanceIDs(cards []shuffle.Card) []string {
	return lo.Map(cards, func(c shuffle.Card, _ int) string { return c.InstanceID })
}

func drawnCard(catalog *weapons.Catalog, instanceID string) (*DrawnCard, error) {
	def, ok := catalog.DefinitionOf(instanceID)
	if !ok {
		return nil, errors.CatalogInconsistencyf("instance %s has no definition", instanceID)
	}
	return &DrawnCard{InstanceID: instanceID, Definition: def}, nil
}

func cardEntity(catalog *weapons.Catalog, instanceID string) *weapons.CardInstance {
	inst, ok := catalog.Instance(instanceID)
	if !ok {
		return &weapons.CardInstance{ID: instanceID}
	}
	return inst
}

// BuildDeck composes and shuffles a tier's deck if the session has none yet
func (o *orchestrator) BuildDeck(ctx context.Context, input *BuildDeckInput) (*BuildDeckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}

	out := &BuildDeckOutput{}
	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(ctx context.Context, m *session.Mutation) error {
			if _, ok := m.State.Deck(input.Tier); ok {
				m.Unchanged()
				return nil
			}

			deck, report, err := o.compose(ctx, m, input.Tier)
			if err != nil {
				return err
			}
			m.State.Decks[input.Tier] = deck
			m.Announce(session.EventDeckBuilt, nil, map[string]any{"tier": input.Tier.String(), "size": deck.Size})

			out.Built = true
			out.Report = report
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out.Deck = result.State.Decks[input.Tier].Clone()
	if out.Built {
		slog.InfoContext(ctx, "Deck built",
			"session_id", input.SessionID,
			"tier", input.Tier,
			"size", out.Deck.Size,
			"remaining", len(out.Deck.Remaining),
		)
	}
	return out, nil
}

// Reset throws away deck state and builds again from the current composition
func (o *orchestrator) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.Tier != "" && !input.Tier.IsValid() {
		return nil, errors.InvalidArgumentf("unknown tier %q", input.Tier)
	}

	if input.SelectPreset != nil && *input.SelectPreset != "" {
		if _, err := o.presets.Get(ctx, presets.GetInput{ID: *input.SelectPreset}); err != nil {
			return nil, err
		}
	}

	var rebuilt []weapons.Tier
	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(ctx context.Context, m *session.Mutation) error {
			if input.SelectPreset != nil {
				m.State.Settings.PresetID = *input.SelectPreset
				m.State.Settings.UpdatedAt = o.clock.Now()
			}

			tiers := []weapons.Tier{input.Tier}
			if input.Tier == "" {
				tiers = lo.Filter(weapons.AllTiers(), func(t weapons.Tier, _ int) bool {
					_, ok := m.State.Deck(t)
					return ok
				})
			}

			for _, tier := range tiers {
				deck, _, err := o.compose(ctx, m, tier)
				if err != nil {
					return err
				}
				m.State.Decks[tier] = deck
				m.Announce(session.EventDeckBuilt, nil, map[string]any{"tier": tier.String(), "size": deck.Size, "reset": true})
			}
			rebuilt = tiers
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := &ResetOutput{Decks: make([]*weapons.DeckState, 0, len(rebuilt))}
	for _, tier := range rebuilt {
		out.Decks = append(out.Decks, result.State.Decks[tier].Clone())
	}

	slog.InfoContext(ctx, "Decks reset",
		"session_id", input.SessionID,
		"tiers", rebuilt,
		"preset_id", result.State.Settings.PresetID,
	)
	return out, nil
}

// drawOne pops the top card, folding discard back in when needed
func (o *orchestrator) drawOne(m *session.Mutation, deck *weapons.DeckState) (card *DrawnCard, reshuffled bool, err error) {
	if deck.IsExhausted() {
		if len(deck.Discard) == 0 {
			return nil, false, nil
		}
		n := deck.ReclaimDiscard()
		if _, err := o.reshuffle(m, deck); err != nil {
			return nil, false, err
		}
		reshuffled = true
		m.Announce(session.EventDeckReshuffled, nil, map[string]any{"tier": deck.Tier.String(), "reclaimed": n})
	}

	id, _ := deck.PopTop()
	card, err = drawnCard(m.Catalog, id)
	if err != nil {
		return nil, false, err
	}
	m.Announce(session.EventDeckDrawn, cardEntity(m.Catalog, id), map[string]any{"tier": deck.Tier.String()})
	return card, reshuffled, nil
}

// Draw takes the top card, folding discard back in first when the deck is empty
func (o *orchestrator) Draw(ctx context.Context, input *DrawInput) (*DrawOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}

	out := &DrawOutput{}
	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			deck, err := requireDeck(m.State, input.Tier)
			if err != nil {
				return err
			}

			card, reshuffled, err := o.drawOne(m, deck)
			if err != nil {
				return err
			}
			if card == nil {
				m.Unchanged()
				return nil
			}
			out.Card = card
			out.Reshuffled = reshuffled
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out.Deck = result.State.Decks[input.Tier].Clone()
	if out.Reshuffled {
		slog.InfoContext(ctx, "Discard reshuffled into deck",
			"session_id", input.SessionID,
			"tier", input.Tier,
			"remaining", len(out.Deck.Remaining),
		)
	}
	return out, nil
}

// DrawTwo is two draws in a row
func (o *orchestrator) DrawTwo(ctx context.Context, input *DrawTwoInput) (*DrawTwoOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}

	out := &DrawTwoOutput{Cards: []*DrawnCard{}}
	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			deck, err := requireDeck(m.State, input.Tier)
			if err != nil {
				return err
			}

			for range 2 {
				card, reshuffled, err := o.drawOne(m, deck)
				if err != nil {
					return err
				}
				if card == nil {
					break
				}
				out.Cards = append(out.Cards, card)
				if reshuffled {
					out.Reshuffles++
				}
			}
			if len(out.Cards) == 0 {
				m.Unchanged()
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out.Deck = result.State.Decks[input.Tier].Clone()
	return out, nil
}

// Discard puts a drawn or set-aside card on top of the discard pile
func (o *orchestrator) Discard(ctx context.Context, input *DiscardInput) (*DiscardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance ID is required")
	}

	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			deck, err := requireDeck(m.State, input.Tier)
			if err != nil {
				return err
			}

			def, ok := m.Catalog.DefinitionOf(input.InstanceID)
			if !ok {
				return errors.CatalogInconsistencyf("instance %s is not in the catalog", input.InstanceID)
			}
			if def.Tier != input.Tier {
				return errors.CatalogInconsistencyf("instance %s belongs to the %s deck, not %s",
					input.InstanceID, def.Tier, input.Tier)
			}

			switch pile := deck.Locate(input.InstanceID); pile {
			case weapons.PileRemaining, weapons.PileDiscard:
				return errors.FailedPreconditionf("instance %s is already in %s", input.InstanceID, pile)
			case weapons.PileSetAside:
				deck.SetAside = lo.Without(deck.SetAside, input.InstanceID)
			case weapons.PileNone:
				if _, held := m.State.Inventory.FindInstance(input.InstanceID); held {
					return errors.FailedPreconditionf("instance %s is in the inventory; remove it instead", input.InstanceID)
				}
				return errors.FailedPreconditionf("instance %s is not part of this deck", input.InstanceID)
			}

			deck.PushDiscard(input.InstanceID)
			m.Announce(session.EventDeckDiscarded, cardEntity(m.Catalog, input.InstanceID),
				map[string]any{"tier": input.Tier.String()})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &DiscardOutput{Deck: result.State.Decks[input.Tier].Clone()}, nil
}

// Shuffle reorders the remaining cards without touching discard
func (o *orchestrator) Shuffle(ctx context.Context, input *ShuffleInput) (*ShuffleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}

	out := &ShuffleOutput{}
	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			deck, err := requireDeck(m.State, input.Tier)
			if err != nil {
				return err
			}

			report, err := o.reshuffle(m, deck)
			if err != nil {
				return err
			}
			out.Report = report
			m.Announce(session.EventDeckReshuffled, nil, map[string]any{"tier": input.Tier.String(), "reclaimed": 0})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out.Deck = result.State.Decks[input.Tier].Clone()
	return out, nil
}

// ReclaimAllDiscardIntoDeck moves the discard pile under the remaining cards.
// Only a reshuffling reclaim stamps LastShuffledAt.
func (o *orchestrator) ReclaimAllDiscardIntoDeck(ctx context.Context, input *ReclaimInput) (*ReclaimOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}

	out := &ReclaimOutput{}
	result, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			deck, err := requireDeck(m.State, input.Tier)
			if err != nil {
				return err
			}

			out.Reclaimed = deck.ReclaimDiscard()
			if input.Shuffle {
				if _, err := o.reshuffle(m, deck); err != nil {
					return err
				}
				m.Announce(session.EventDeckReshuffled, nil,
					map[string]any{"tier": input.Tier.String(), "reclaimed": out.Reclaimed})
			} else if out.Reclaimed == 0 {
				m.Unchanged()
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	out.Deck = result.State.Decks[input.Tier].Clone()
	slog.InfoContext(ctx, "Discard reclaimed",
		"session_id", input.SessionID,
		"tier", input.Tier,
		"reclaimed", out.Reclaimed,
		"shuffled", input.Shuffle,
	)
	return out, nil
}

// GetRecentDraws returns the unresolved draws, most recent first
func (o *orchestrator) GetRecentDraws(ctx context.Context, input *GetRecentDrawsInput) (*GetRecentDrawsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}

	read, err := o.sessions.Read(ctx, &session.ReadInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}
	deck, err := requireDeck(read.State, input.Tier)
	if err != nil {
		return nil, err
	}

	out := &GetRecentDrawsOutput{Cards: make([]*DrawnCard, 0, len(deck.RecentDraws))}
	for _, id := range deck.RecentDraws {
		card, err := drawnCard(read.Catalog, id)
		if err != nil {
			return nil, err
		}
		out.Cards = append(out.Cards, card)
	}
	return out, nil
}

// GetDeck returns a tier's deck state
func (o *orchestrator) GetDeck(ctx context.Context, input *GetDeckInput) (*GetDeckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.SessionID, input.Tier); err != nil {
		return nil, err
	}

	read, err := o.sessions.Read(ctx, &session.ReadInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}
	deck, err := requireDeck(read.State, input.Tier)
	if err != nil {
		return nil, err
	}

	return &GetDeckOutput{
		Deck:        deck.Clone(),
		InInventory: read.State.Inventory.CountForTier(input.Tier),
	}, nil
}

// EndSession deletes every deck, the inventory and the session override
func (o *orchestrator) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessions.Delete(ctx, &session.DeleteInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Session ended", "session_id", input.SessionID, "existed", out.Existed)
	return &EndSessionOutput{Existed: out.Existed}, nil
}
