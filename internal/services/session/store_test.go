package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils/builders"
)

type StoreTestSuite struct {
	suite.Suite

	ctx     context.Context
	handle  *weapons.CatalogHandle
	env     *testutils.SessionEnv
	pistol0 string
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.handle = builders.TwoByThree().BuildHandle()
	s.env = testutils.CreateTestSessions(s.T(), s.handle)
	s.pistol0 = weapons.InstanceID(weapons.DefinitionID(weapons.TierStarting, "Pistol", "core"), 0)
}

func (s *StoreTestSuite) bumpBonus(m *session.Mutation) error {
	m.State.Settings.BonusSlots++
	return nil
}

func (s *StoreTestSuite) TestReadUnknownSessionIsEmpty() {
	out, err := s.env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: "new"})
	s.Require().NoError(err)

	s.Equal(int64(0), out.State.Version)
	s.Empty(out.State.Decks)
	s.Empty(out.State.Inventory.Items)
	s.Same(s.handle.Current(), out.Catalog)
}

func (s *StoreTestSuite) TestUpdateCommitsAndBumpsVersion() {
	for i := 1; i <= 2; i++ {
		out, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
			SessionID: "s1",
			Apply:     func(_ context.Context, m *session.Mutation) error { return s.bumpBonus(m) },
		})
		s.Require().NoError(err)
		s.True(out.Committed)
		s.Equal(int64(i), out.State.Version)
	}

	read, err := s.env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: "s1"})
	s.Require().NoError(err)
	s.Equal(2, read.State.Settings.BonusSlots)
	s.Equal(int64(2), read.State.Version)
}

func (s *StoreTestSuite) TestUnchangedWritesNothing() {
	out, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.State.Settings.BonusSlots = 4
			m.Unchanged()
			return nil
		},
	})
	s.Require().NoError(err)
	s.False(out.Committed)

	_, err = s.env.Repository.Get(s.ctx, sessionstate.GetInput{SessionID: "s1"})
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestApplyErrorWritesNothing() {
	_, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.State.Settings.BonusSlots = 4
			m.Record(&weapons.InventoryEvent{ID: "e1", SessionID: "s1", Type: weapons.EventTypeAdd})
			return errors.FailedPrecondition("nope")
		},
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	history, err := s.env.Sessions.History(s.ctx, &session.HistoryInput{SessionID: "s1"})
	s.Require().NoError(err)
	s.Empty(history.Events)

	read, err := s.env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: "s1"})
	s.Require().NoError(err)
	s.Equal(0, read.State.Settings.BonusSlots)
}

func (s *StoreTestSuite) TestRecordedEventsLandInHistory() {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		_, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
			SessionID: "s1",
			Apply: func(_ context.Context, m *session.Mutation) error {
				m.Record(&weapons.InventoryEvent{
					ID:         fmt.Sprintf("e%d", i),
					SessionID:  "s1",
					Type:       weapons.EventTypeAdd,
					OccurredAt: now.Add(time.Duration(i) * time.Minute),
				})
				return nil
			},
		})
		s.Require().NoError(err)
	}

	out, err := s.env.Sessions.History(s.ctx, &session.HistoryInput{SessionID: "s1", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 2)
	s.Equal("e3", out.Events[0].ID)
	s.Equal("e2", out.Events[1].ID)
}

func (s *StoreTestSuite) TestAnnouncePublishesAfterCommit() {
	var received []events.Event
	s.env.Bus.SubscribeFunc(session.EventInventoryChange, 0, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	_, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.Announce(session.EventInventoryChange, nil, map[string]any{"type": "add"})
			m.Unchanged()
			return nil
		},
	})
	s.Require().NoError(err)
	s.Empty(received, "nothing is announced when nothing is committed")

	_, err = s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.Announce(session.EventInventoryChange, nil, map[string]any{"type": "add"})
			return s.bumpBonus(m)
		},
	})
	s.Require().NoError(err)
	s.Require().Len(received, 1)
	s.Equal(session.EventInventoryChange, received[0].Type())
}

func (s *StoreTestSuite) TestFailingSubscriberDoesNotUndoCommit() {
	s.env.Bus.SubscribeFunc(session.EventDeckBuilt, 0, func(context.Context, events.Event) error {
		return fmt.Errorf("subscriber exploded")
	})

	out, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.Announce(session.EventDeckBuilt, nil, nil)
			return s.bumpBonus(m)
		},
	})
	s.Require().NoError(err)
	s.True(out.Committed)
}

func (s *StoreTestSuite) TestConcurrentUpdatesSerialize() {
	const writers = 10

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
				SessionID: "s1",
				Apply:     func(_ context.Context, m *session.Mutation) error { return s.bumpBonus(m) },
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	read, err := s.env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: "s1"})
	s.Require().NoError(err)
	s.Equal(writers, read.State.Settings.BonusSlots)
	s.Equal(int64(writers), read.State.Version)
}

func (s *StoreTestSuite) TestCatalogNotLoaded() {
	env := testutils.CreateTestSessions(s.T(), weapons.NewCatalogHandle(nil))

	_, err := env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: "s1"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *StoreTestSuite) TestDeckDisagreeingWithCatalog() {
	state := weapons.NewSessionState("s1")
	deck := weapons.NewDeckState("s1", weapons.TierStarting, []string{s.pistol0, "starting:core:ghost#0"}, time.Now())
	state.Decks[weapons.TierStarting] = deck
	_, err := s.env.Repository.Save(s.ctx, sessionstate.SaveInput{State: state})
	s.Require().NoError(err)

	_, err = s.env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: "s1"})
	s.Require().Error(err)
	s.True(errors.IsCatalogInconsistency(err))

	_, err = s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply:     func(_ context.Context, m *session.Mutation) error { return s.bumpBonus(m) },
	})
	s.Require().Error(err)
	s.True(errors.IsCatalogInconsistency(err))
}

func (s *StoreTestSuite) TestDelete() {
	_, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply:     func(_ context.Context, m *session.Mutation) error { return s.bumpBonus(m) },
	})
	s.Require().NoError(err)

	ended := 0
	s.env.Bus.SubscribeFunc(session.EventSessionEnded, 0, func(context.Context, events.Event) error {
		ended++
		return nil
	})

	out, err := s.env.Sessions.Delete(s.ctx, &session.DeleteInput{SessionID: "s1"})
	s.Require().NoError(err)
	s.True(out.Existed)
	s.Equal(1, ended)

	out, err = s.env.Sessions.Delete(s.ctx, &session.DeleteInput{SessionID: "s1"})
	s.Require().NoError(err)
	s.False(out.Existed)
	s.Equal(1, ended)
}

func (s *StoreTestSuite) TestValidation() {
	_, err := s.env.Sessions.Read(s.ctx, &session.ReadInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.env.Sessions.Update(s.ctx, &session.UpdateInput{SessionID: "s1"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.env.Sessions.Delete(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.env.Sessions.History(s.ctx, &session.HistoryInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = session.NewStore(&session.Config{})
	s.Error(err)
}
