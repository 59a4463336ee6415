package deck_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle"
	shufflemock "github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle/mock"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/deck"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/clock"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets"
	presetsmock "github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets/mock"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils/builders"
)

// PresetSelectionTestSuite covers how a deck picks its preset, with the
// preset store and shuffler mocked out
type PresetSelectionTestSuite struct {
	suite.Suite

	ctx          context.Context
	ctrl         *gomock.Controller
	mockPresets  *presetsmock.MockRepository
	mockShuffler *shufflemock.MockShuffler
	env          *testutils.SessionEnv
	orch         deck.Service

	pistol  string
	crowbar string
}

func TestPresetSelectionSuite(t *testing.T) {
	suite.Run(t, new(PresetSelectionTestSuite))
}

func (s *PresetSelectionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockPresets = presetsmock.NewMockRepository(s.ctrl)
	s.mockShuffler = shufflemock.NewMockShuffler(s.ctrl)

	handle := builders.TwoByThree().BuildHandle()
	s.env = testutils.CreateTestSessions(s.T(), handle)
	resolver, err := composition.NewResolver(&composition.Config{Catalog: handle})
	s.Require().NoError(err)

	s.orch, err = deck.NewOrchestrator(&deck.Config{
		Sessions: s.env.Sessions,
		Presets:  s.mockPresets,
		Resolver: resolver,
		Shuffler: s.mockShuffler,
		Clock:    clock.NewManual(time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)

	s.pistol = weapons.DefinitionID(weapons.TierStarting, "Pistol", "core")
	s.crowbar = weapons.DefinitionID(weapons.TierStarting, "Crowbar", "core")

	// Keep the resolved order so sizes are easy to reason about
	s.mockShuffler.EXPECT().Shuffle(gomock.Any()).
		DoAndReturn(func(cards []shuffle.Card) ([]shuffle.Card, error) { return cards, nil }).
		AnyTimes()
}

func (s *PresetSelectionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PresetSelectionTestSuite) preset(id string, isDefault bool, updatedAt time.Time, crowbarCopies int) *weapons.Preset {
	c, err := weapons.NewPresetCustomization(id, weapons.CustomizationSpec{
		DefinitionID: s.crowbar,
		Enabled:      true,
		Count:        &crowbarCopies,
	})
	s.Require().NoError(err)
	return &weapons.Preset{
		ID:             id,
		Name:           id,
		IsDefault:      isDefault,
		UpdatedAt:      updatedAt,
		Customizations: []*weapons.Customization{c},
	}
}

func (s *PresetSelectionTestSuite) selectPreset(id string) {
	_, err := s.env.Sessions.Update(s.ctx, &session.UpdateInput{
		SessionID: sessionID,
		Apply: func(_ context.Context, m *session.Mutation) error {
			m.State.Settings.PresetID = id
			return nil
		},
	})
	s.Require().NoError(err)
}

func (s *PresetSelectionTestSuite) TestNoPresetsUsesCatalogDefaults() {
	s.mockPresets.EXPECT().List(gomock.Any(), presets.ListInput{}).Return(&presets.ListOutput{}, nil)

	out, err := s.orch.BuildDeck(s.ctx, &deck.BuildDeckInput{SessionID: sessionID, Tier: weapons.TierStarting})
	s.Require().NoError(err)
	s.Equal(6, out.Deck.Size)
}

func (s *PresetSelectionTestSuite) TestMostRecentDefaultWins() {
	older := s.preset("older", true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1)
	newer := s.preset("newer", true, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 2)
	s.mockPresets.EXPECT().List(gomock.Any(), presets.ListInput{}).
		Return(&presets.ListOutput{Presets: []*weapons.Preset{newer, older}}, nil)

	out, err := s.orch.BuildDeck(s.ctx, &deck.BuildDeckInput{SessionID: sessionID, Tier: weapons.TierStarting})
	s.Require().NoError(err)
	s.Equal(5, out.Deck.Size, "three pistols plus the newer preset's two crowbars")
}

func (s *PresetSelectionTestSuite) TestSelectedPresetGoneFallsBackToDefault() {
	s.selectPreset("deleted")
	fallback := s.preset("fallback", true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1)

	gomock.InOrder(
		s.mockPresets.EXPECT().Get(gomock.Any(), presets.GetInput{ID: "deleted"}).
			Return(nil, errors.NotFound("preset deleted not found")),
		s.mockPresets.EXPECT().List(gomock.Any(), presets.ListInput{}).
			Return(&presets.ListOutput{Presets: []*weapons.Preset{fallback}}, nil),
	)

	out, err := s.orch.BuildDeck(s.ctx, &deck.BuildDeckInput{SessionID: sessionID, Tier: weapons.TierStarting})
	s.Require().NoError(err)
	s.Equal(4, out.Deck.Size)
}

func (s *PresetSelectionTestSuite) TestSelectedPresetIsUsed() {
	s.selectPreset("chosen")
	s.mockPresets.EXPECT().Get(gomock.Any(), presets.GetInput{ID: "chosen"}).
		Return(&presets.GetOutput{Preset: s.preset("chosen", false, time.Time{}, 3)}, nil)

	out, err := s.orch.BuildDeck(s.ctx, &deck.BuildDeckInput{SessionID: sessionID, Tier: weapons.TierStarting})
	s.Require().NoError(err)
	s.Equal(6, out.Deck.Size)
}

func (s *PresetSelectionTestSuite) TestPresetStoreFailure() {
	s.mockPresets.EXPECT().List(gomock.Any(), presets.ListInput{}).
		Return(nil, errors.Internal("database is locked"))

	_, err := s.orch.BuildDeck(s.ctx, &deck.BuildDeckInput{SessionID: sessionID, Tier: weapons.TierStarting})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))

	got, err := s.env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Empty(got.State.Decks, "a failed build leaves no deck behind")
}
