package session

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel/attribute"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/sessionlock"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate"
	"github.com/KirkDiggler/weapon-deck-api/internal/telemetry"
)

const errSessionIDRequired = "session ID is required"

// Config holds the dependencies for the session store
type Config struct {
	Repository sessionstate.Repository
	Catalog    *weapons.CatalogHandle
	Locker     *sessionlock.Locker
	EventBus   events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Locker == nil {
		vb.RequiredField("Locker")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type store struct {
	repo    sessionstate.Repository
	catalog *weapons.CatalogHandle
	locker  *sessionlock.Locker
	bus     events.EventBus
}

// NewStore creates the session unit of work
func NewStore(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &store{
		repo:    cfg.Repository,
		catalog: cfg.Catalog,
		locker:  cfg.Locker,
		bus:     cfg.EventBus,
	}, nil
}

// load reads the session and checks every deck against the catalog
func (s *store) load(ctx context.Context, sessionID string) (*weapons.SessionState, *weapons.Catalog, error) {
	catalog := s.catalog.Current()
	if catalog == nil {
		return nil, nil, errors.FailedPrecondition("catalog is not loaded")
	}

	var state *weapons.SessionState
	out, err := s.repo.Get(ctx, sessionstate.GetInput{SessionID: sessionID})
	switch {
	case errors.IsNotFound(err):
		state = weapons.NewSessionState(sessionID)
	case err != nil:
		return nil, nil, errors.Wrapf(err, "failed to load session %s", sessionID)
	default:
		state = out.State
	}

	for _, tier := range weapons.AllTiers() {
		deck, ok := state.Deck(tier)
		if !ok {
			continue
		}
		if err := deck.Validate(catalog, state.Inventory.CountForTier(tier)); err != nil {
			return nil, nil, errors.CatalogInconsistencyf("session %s: %v", sessionID, err)
		}
	}

	return state, catalog, nil
}

func (s *store) Read(ctx context.Context, input *ReadInput) (*ReadOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	state, catalog, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &ReadOutput{State: state, Catalog: catalog}, nil
}

func (s *store) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}
	if input.Apply == nil {
		return nil, errors.InvalidArgument("apply func is required")
	}

	ctx, span := telemetry.Tracer().Start(ctx, "session.Update")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", input.SessionID))

	unlock, err := s.locker.Lock(ctx, input.SessionID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeAborted, "gave up waiting for session lock")
	}
	defer unlock()

	state, catalog, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	m := &Mutation{State: state, Catalog: catalog}
	if err := input.Apply(ctx, m); err != nil {
		return nil, err
	}
	if m.unchanged {
		return &UpdateOutput{State: state}, nil
	}

	expected := state.Version
	if _, err := s.repo.Save(ctx, sessionstate.SaveInput{
		State:           state,
		ExpectedVersion: expected,
		Events:          m.events,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to save session %s", input.SessionID)
	}
	span.SetAttributes(attribute.Int64("session.version", state.Version))

	s.announce(ctx, state, m.notices)

	return &UpdateOutput{State: state, Committed: true}, nil
}

// announce publishes queued notices. The state is already committed, so a
// failing subscriber is logged rather than returned.
func (s *store) announce(ctx context.Context, state *weapons.SessionState, notices []notice) {
	for _, n := range notices {
		event := events.NewGameEvent(n.eventType, state, n.target)
		for k, v := range n.data {
			event.Context().Set(k, v)
		}

		if err := s.bus.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "Event subscriber failed",
				"event_type", n.eventType,
				"session_id", state.SessionID,
				"error", err,
			)
		}
	}
}

func (s *store) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	unlock, err := s.locker.Lock(ctx, input.SessionID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeAborted, "gave up waiting for session lock")
	}
	defer unlock()

	out, err := s.repo.Delete(ctx, sessionstate.DeleteInput{SessionID: input.SessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session %s", input.SessionID)
	}

	if out.Existed {
		s.announce(ctx, weapons.NewSessionState(input.SessionID), []notice{{eventType: EventSessionEnded}})
	}

	return &DeleteOutput{Existed: out.Existed}, nil
}

func (s *store) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	out, err := s.repo.ListEvents(ctx, sessionstate.ListEventsInput{
		SessionID: input.SessionID,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read history for session %s", input.SessionID)
	}

	return &HistoryOutput{Events: out.Events}, nil
}
