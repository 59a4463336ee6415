package session_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/sessionlock"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate"
	sessionstatemock "github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate/mock"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils/builders"
)

type StoreFailureTestSuite struct {
	suite.Suite

	ctx      context.Context
	ctrl     *gomock.Controller
	mockRepo *sessionstatemock.MockRepository
	bus      events.EventBus
	store    session.Service
}

func TestStoreFailureSuite(t *testing.T) {
	suite.Run(t, new(StoreFailureTestSuite))
}

func (s *StoreFailureTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = sessionstatemock.NewMockRepository(s.ctrl)
	s.bus = events.NewBus()

	var err error
	s.store, err = session.NewStore(&session.Config{
		Repository: s.mockRepo,
		Catalog:    builders.TwoByThree().BuildHandle(),
		Locker:     sessionlock.New(),
		EventBus:   s.bus,
	})
	s.Require().NoError(err)
}

func (s *StoreFailureTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *StoreFailureTestSuite) TestConflictingWriterAborts() {
	s.mockRepo.EXPECT().Get(gomock.Any(), sessionstate.GetInput{SessionID: "s1"}).
		Return(&sessionstate.GetOutput{State: weapons.NewSessionState("s1")}, nil)
	s.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input sessionstate.SaveInput) (*sessionstate.SaveOutput, error) {
			s.Equal(int64(0), input.ExpectedVersion)
			s.Len(input.Events, 1)
			return nil, errors.Abortedf("session s1 changed underneath us")
		})

	published := 0
	s.bus.SubscribeFunc(session.EventInventoryChange, 0, func(context.Context, events.Event) error {
		published++
		return nil
	})

	_, err := s.store.Update(s.ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.Record(&weapons.InventoryEvent{ID: "e1", SessionID: "s1", Type: weapons.EventTypeAdd})
			m.Announce(session.EventInventoryChange, nil, nil)
			return nil
		},
	})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
	s.Zero(published, "nothing is announced for a failed commit")
}

func (s *StoreFailureTestSuite) TestRepositoryReadFailure() {
	s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.Internal("connection refused"))

	_, err := s.store.Read(s.ctx, &session.ReadInput{SessionID: "s1"})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *StoreFailureTestSuite) TestCanceledContextGivesUpOnLock() {
	ctx, cancel := context.WithCancel(s.ctx)

	s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.NotFound("none"))

	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_, _ = s.store.Update(s.ctx, &session.UpdateInput{
			SessionID: "s1",
			Apply: func(context.Context, *session.Mutation) error {
				close(held)
				<-release
				return errors.FailedPrecondition("stop here")
			},
		})
	}()

	<-held
	cancel()
	_, err := s.store.Update(ctx, &session.UpdateInput{
		SessionID: "s1",
		Apply:     func(context.Context, *session.Mutation) error { return nil },
	})
	close(release)

	s.Require().Error(err)
	s.True(errors.IsAborted(err))
}
