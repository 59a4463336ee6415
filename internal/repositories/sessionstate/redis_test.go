package sessionstate_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite

	ctx     context.Context
	mr      *miniredis.Miniredis
	cleanup func()
	repo    sessionstate.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup

	repo, err := sessionstate.NewRedisRepository(&sessionstate.Config{Client: client, TTL: time.Hour})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) event(n int) *weapons.InventoryEvent {
	return &weapons.InventoryEvent{
		ID:         fmt.Sprintf("evt_%d", n),
		SessionID:  "session-1",
		Type:       weapons.EventTypeAdd,
		InstanceID: fmt.Sprintf("starting/pistol/core#%d", n),
		OccurredAt: time.Date(2024, 1, 1, 0, n, 0, 0, time.UTC),
	}
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, sessionstate.GetInput{SessionID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	state := weapons.NewSessionState("session-1")
	state.Settings.BonusSlots = 2
	state.Decks[weapons.TierStarting] = weapons.NewDeckState("session-1", weapons.TierStarting,
		[]string{"a#0", "b#0"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	out, err := s.repo.Save(s.ctx, sessionstate.SaveInput{State: state})
	s.Require().NoError(err)
	s.Equal(int64(1), out.Version)
	s.Equal(int64(1), state.Version)

	got, err := s.repo.Get(s.ctx, sessionstate.GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(int64(1), got.State.Version)
	s.Equal(2, got.State.Settings.BonusSlots)
	deck, ok := got.State.Deck(weapons.TierStarting)
	s.Require().True(ok)
	s.Equal([]string{"a#0", "b#0"}, deck.Remaining)
	s.NotNil(got.State.Inventory.Items)

	s.True(s.mr.TTL("weapon_deck:session:session-1:state") > 0)
}

func (s *RedisRepositoryTestSuite) TestSaveRejectsStaleVersion() {
	state := weapons.NewSessionState("session-1")
	_, err := s.repo.Save(s.ctx, sessionstate.SaveInput{State: state})
	s.Require().NoError(err)

	stale := weapons.NewSessionState("session-1")
	_, err = s.repo.Save(s.ctx, sessionstate.SaveInput{State: stale, ExpectedVersion: 0})
	s.True(errors.IsAborted(err))
	s.Zero(stale.Version)

	_, err = s.repo.Save(s.ctx, sessionstate.SaveInput{State: state, ExpectedVersion: 1})
	s.Require().NoError(err)
	s.Equal(int64(2), state.Version)
}

func (s *RedisRepositoryTestSuite) TestEventsNewestFirst() {
	state := weapons.NewSessionState("session-1")
	_, err := s.repo.Save(s.ctx, sessionstate.SaveInput{
		State:  state,
		Events: []*weapons.InventoryEvent{s.event(1), s.event(2)},
	})
	s.Require().NoError(err)

	_, err = s.repo.Save(s.ctx, sessionstate.SaveInput{
		State:           state,
		ExpectedVersion: state.Version,
		Events:          []*weapons.InventoryEvent{s.event(3)},
	})
	s.Require().NoError(err)

	all, err := s.repo.ListEvents(s.ctx, sessionstate.ListEventsInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(all.Events, 3)
	s.Equal("evt_3", all.Events[0].ID)
	s.Equal("evt_2", all.Events[1].ID)
	s.Equal("evt_1", all.Events[2].ID)

	limited, err := s.repo.ListEvents(s.ctx, sessionstate.ListEventsInput{SessionID: "session-1", Limit: 2})
	s.Require().NoError(err)
	s.Len(limited.Events, 2)
	s.Equal("evt_3", limited.Events[0].ID)
}

func (s *RedisRepositoryTestSuite) TestRejectedSaveDropsEvents() {
	state := weapons.NewSessionState("session-1")
	_, err := s.repo.Save(s.ctx, sessionstate.SaveInput{State: state})
	s.Require().NoError(err)

	_, err = s.repo.Save(s.ctx, sessionstate.SaveInput{
		State:           weapons.NewSessionState("session-1"),
		ExpectedVersion: 7,
		Events:          []*weapons.InventoryEvent{s.event(1)},
	})
	s.True(errors.IsAborted(err))

	events, err := s.repo.ListEvents(s.ctx, sessionstate.ListEventsInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Empty(events.Events)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	state := weapons.NewSessionState("session-1")
	_, err := s.repo.Save(s.ctx, sessionstate.SaveInput{State: state, Events: []*weapons.InventoryEvent{s.event(1)}})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, sessionstate.DeleteInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.True(out.Existed)

	_, err = s.repo.Get(s.ctx, sessionstate.GetInput{SessionID: "session-1"})
	s.True(errors.IsNotFound(err))

	events, err := s.repo.ListEvents(s.ctx, sessionstate.ListEventsInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Empty(events.Events)

	out, err = s.repo.Delete(s.ctx, sessionstate.DeleteInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.False(out.Existed)
}

func (s *RedisRepositoryTestSuite) TestList() {
	empty, err := s.repo.List(s.ctx, sessionstate.ListInput{})
	s.Require().NoError(err)
	s.Empty(empty.SessionIDs)

	for _, id := range []string{"session-b", "session-a", "session-c"} {
		_, err := s.repo.Save(s.ctx, sessionstate.SaveInput{State: weapons.NewSessionState(id)})
		s.Require().NoError(err)
	}
	_, err = s.repo.Delete(s.ctx, sessionstate.DeleteInput{SessionID: "session-c"})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, sessionstate.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"session-a", "session-b"}, out.SessionIDs)
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Save(s.ctx, sessionstate.SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.ListEvents(s.ctx, sessionstate.ListEventsInput{SessionID: "x", Limit: -1})
	s.True(errors.IsInvalidArgument(err))

	_, err = sessionstate.NewRedisRepository(&sessionstate.Config{})
	s.Error(err)
}
