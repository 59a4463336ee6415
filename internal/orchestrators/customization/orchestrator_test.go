package customization_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/customization"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/deck"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/clock"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/idgen"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils/builders"
)

const sessionID = "session-1"

type OrchestratorTestSuite struct {
	suite.Suite

	ctx   context.Context
	clock *clock.Manual
	env   *testutils.SessionEnv
	decks deck.Service
	orch  customization.Service

	pistol     string
	crowbar    string
	flashlight string
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewManual(time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC))

	handle := builders.StandardCatalog().BuildHandle()
	s.env = testutils.CreateTestSessions(s.T(), handle)

	presetRepo, err := presets.NewSQLite(&presets.SQLiteConfig{DB: testutils.CreateTestSQLite(s.T())})
	s.Require().NoError(err)
	resolver, err := composition.NewResolver(&composition.Config{Catalog: handle})
	s.Require().NoError(err)
	shuffler, err := shuffle.New(&shuffle.Config{Roller: testutils.NewSeededRoller(3)})
	s.Require().NoError(err)

	s.decks, err = deck.NewOrchestrator(&deck.Config{
		Sessions: s.env.Sessions,
		Presets:  presetRepo,
		Resolver: resolver,
		Shuffler: shuffler,
		Clock:    s.clock,
	})
	s.Require().NoError(err)

	s.orch, err = customization.NewOrchestrator(&customization.Config{
		Presets:     presetRepo,
		Sessions:    s.env.Sessions,
		Decks:       s.decks,
		Resolver:    resolver,
		Catalog:     handle,
		IDGenerator: idgen.NewSequential("preset"),
		Clock:       s.clock,
	})
	s.Require().NoError(err)

	s.pistol = weapons.DefinitionID(weapons.TierStarting, "Pistol", "core")
	s.crowbar = weapons.DefinitionID(weapons.TierStarting, "Crowbar", "core")
	s.flashlight = weapons.DefinitionID(weapons.TierStarting, "Flashlight", "core")
}

func count(n int) *int {
	return &n
}

func (s *OrchestratorTestSuite) createPreset(name string, isDefault bool, specs ...weapons.CustomizationSpec) *weapons.Preset {
	out, err := s.orch.CreatePreset(s.ctx, &customization.CreatePresetInput{
		Name:           name,
		IsDefault:      isDefault,
		Customizations: specs,
	})
	s.Require().NoError(err)
	return out.Preset
}

func (s *OrchestratorTestSuite) TestCreateAndGetPreset() {
	created := s.createPreset("No lights", false,
		weapons.CustomizationSpec{DefinitionID: s.flashlight, Enabled: false},
		weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: true, Count: count(5), Priority: 1},
	)
	s.Equal("preset_1", created.ID)

	got, err := s.orch.GetPreset(s.ctx, &customization.GetPresetInput{ID: created.ID})
	s.Require().NoError(err)
	s.Equal("No lights", got.Preset.Name)
	s.Require().Len(got.Preset.Customizations, 2)
	s.Equal(weapons.OwnerKindPreset, got.Preset.Customizations[0].Owner.Kind)
	s.Equal(created.ID, got.Preset.Customizations[0].Owner.ID)
	s.Equal(5, *got.Preset.Customizations[1].Count)
}

func (s *OrchestratorTestSuite) TestCreatePresetRejects() {
	testCases := []struct {
		name  string
		input *customization.CreatePresetInput
	}{
		{"blank name", &customization.CreatePresetInput{Name: "  "}},
		{"unknown definition", &customization.CreatePresetInput{
			Name:           "Bad",
			Customizations: []weapons.CustomizationSpec{{DefinitionID: "starting:core:ghost", Enabled: true}},
		}},
		{"count too high", &customization.CreatePresetInput{
			Name:           "Bad",
			Customizations: []weapons.CustomizationSpec{{DefinitionID: s.pistol, Enabled: true, Count: count(weapons.MaxCountOverride + 1)}},
		}},
		{"count too low", &customization.CreatePresetInput{
			Name:           "Bad",
			Customizations: []weapons.CustomizationSpec{{DefinitionID: s.pistol, Enabled: true, Count: count(0)}},
		}},
		{"duplicate definition", &customization.CreatePresetInput{
			Name: "Bad",
			Customizations: []weapons.CustomizationSpec{
				{DefinitionID: s.pistol, Enabled: true},
				{DefinitionID: s.pistol, Enabled: false},
			},
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orch.CreatePreset(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), "unexpected error: %v", err)
		})
	}

	list, err := s.orch.ListPresets(s.ctx, &customization.ListPresetsInput{})
	s.Require().NoError(err)
	s.Empty(list.Presets)
}

func (s *OrchestratorTestSuite) TestOnlyOneDefault() {
	first := s.createPreset("First", true)
	s.True(first.IsDefault)

	s.clock.Advance(time.Minute)
	second := s.createPreset("Second", true)
	s.True(second.IsDefault)

	got, err := s.orch.GetPreset(s.ctx, &customization.GetPresetInput{ID: first.ID})
	s.Require().NoError(err)
	s.False(got.Preset.IsDefault)

	out, err := s.orch.SetDefaultPreset(s.ctx, &customization.SetDefaultPresetInput{ID: first.ID})
	s.Require().NoError(err)
	s.True(out.Preset.IsDefault)
	s.Equal(1, out.Cleared)
}

func (s *OrchestratorTestSuite) TestSetPresetCustomizationReplaces() {
	preset := s.createPreset("Tuned", false, weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: true, Count: count(2)})

	out, err := s.orch.SetCustomization(s.ctx, &customization.SetCustomizationInput{
		PresetID: preset.ID,
		Spec:     weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: true, Count: count(6)},
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Preset)
	s.Nil(out.Override)

	got, err := s.orch.GetPreset(s.ctx, &customization.GetPresetInput{ID: preset.ID})
	s.Require().NoError(err)
	s.Require().Len(got.Preset.Customizations, 1)
	s.Equal(6, *got.Preset.Customizations[0].Count)
}

func (s *OrchestratorTestSuite) TestSessionOverride() {
	out, err := s.orch.SetCustomization(s.ctx, &customization.SetCustomizationInput{
		SessionID: sessionID,
		Spec:      weapons.CustomizationSpec{DefinitionID: s.crowbar, Enabled: false},
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Override)
	s.Len(out.Override.Customizations, 1)
	s.Equal(weapons.OwnerKindSession, out.Customization.Owner.Kind)

	diff, err := s.orch.Diff(s.ctx, &customization.DiffInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Require().Len(diff.Entries, 1)
	s.Equal(s.crowbar, diff.Entries[0].DefinitionID)
	s.Equal(composition.DiffKindDisabled, diff.Entries[0].Kind)

	cleared, err := s.orch.ClearSessionOverride(s.ctx, &customization.ClearSessionOverrideInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(1, cleared.Cleared)

	diff, err = s.orch.Diff(s.ctx, &customization.DiffInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Empty(diff.Entries)
}

func (s *OrchestratorTestSuite) TestSetCustomizationTarget() {
	spec := weapons.CustomizationSpec{DefinitionID: s.crowbar, Enabled: false}

	_, err := s.orch.SetCustomization(s.ctx, &customization.SetCustomizationInput{Spec: spec})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.SetCustomization(s.ctx, &customization.SetCustomizationInput{PresetID: "p", SessionID: sessionID, Spec: spec})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.SetCustomization(s.ctx, &customization.SetCustomizationInput{PresetID: "missing", Spec: spec})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestApplyCustomizationsRebuildsDecks() {
	built, err := s.decks.BuildDeck(s.ctx, &deck.BuildDeckInput{SessionID: sessionID, Tier: weapons.TierStarting})
	s.Require().NoError(err)
	s.Equal(9, built.Deck.Size)

	preset := s.createPreset("No lights", false, weapons.CustomizationSpec{DefinitionID: s.flashlight, Enabled: false})

	out, err := s.orch.ApplyCustomizations(s.ctx, &customization.ApplyCustomizationsInput{SessionID: sessionID, PresetID: preset.ID})
	s.Require().NoError(err)
	s.Equal(preset.ID, out.PresetID)
	s.Require().Len(out.Decks, 1)
	s.Equal(8, out.Decks[0].Size)

	read, err := s.env.Sessions.Read(s.ctx, &session.ReadInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(preset.ID, read.State.Settings.PresetID)

	// Going back to defaults
	out, err = s.orch.ApplyCustomizations(s.ctx, &customization.ApplyCustomizationsInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(9, out.Decks[0].Size)
}

func (s *OrchestratorTestSuite) TestApplyUnknownPreset() {
	_, err := s.orch.ApplyCustomizations(s.ctx, &customization.ApplyCustomizationsInput{SessionID: sessionID, PresetID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestExportImportRoundTrip() {
	original := s.createPreset("Hard mode", false,
		weapons.CustomizationSpec{DefinitionID: s.flashlight, Enabled: false},
		weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: true, Count: count(1), Priority: 2},
	)

	exported, err := s.orch.ExportPreset(s.ctx, &customization.ExportPresetInput{ID: original.ID})
	s.Require().NoError(err)
	s.Equal(customization.FormatVersion, exported.Blob.FormatVersion)
	s.Equal("v1.0.0", exported.Blob.CatalogVersion)

	imported, err := s.orch.ImportPreset(s.ctx, &customization.ImportPresetInput{Data: exported.Data, Name: "Hard mode (copy)"})
	s.Require().NoError(err)
	s.False(imported.CatalogVersionMismatch)
	s.NotEqual(original.ID, imported.Preset.ID)
	s.Equal("Hard mode (copy)", imported.Preset.Name)
	s.Equal(weapons.Specs(original.Customizations), weapons.Specs(imported.Preset.Customizations))

	origDiff, err := s.orch.Diff(s.ctx, &customization.DiffInput{PresetID: original.ID})
	s.Require().NoError(err)
	copyDiff, err := s.orch.Diff(s.ctx, &customization.DiffInput{PresetID: imported.Preset.ID})
	s.Require().NoError(err)
	s.Equal(origDiff.Entries, copyDiff.Entries)
	s.Len(origDiff.Entries, 2)
}

func (s *OrchestratorTestSuite) TestImportRejects() {
	encode := func(blob customization.PresetBlob) []byte {
		data, err := json.Marshal(blob)
		s.Require().NoError(err)
		return data
	}

	testCases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not json", []byte("{nope")},
		{"future format", encode(customization.PresetBlob{FormatVersion: 2, Name: "Later"})},
		{"unknown definition", encode(customization.PresetBlob{
			FormatVersion:  customization.FormatVersion,
			Name:           "Ghosts",
			Customizations: []weapons.CustomizationSpec{{DefinitionID: "starting:core:ghost", Enabled: true}},
		})},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orch.ImportPreset(s.ctx, &customization.ImportPresetInput{Data: tc.data})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), "unexpected error: %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestImportFromOtherCatalogVersion() {
	data, err := json.Marshal(customization.PresetBlob{
		FormatVersion:  customization.FormatVersion,
		CatalogVersion: "v0.9.0",
		Name:           "Old",
		Customizations: []weapons.CustomizationSpec{{DefinitionID: s.crowbar, Enabled: false}},
	})
	s.Require().NoError(err)

	out, err := s.orch.ImportPreset(s.ctx, &customization.ImportPresetInput{Data: data, IsDefault: true})
	s.Require().NoError(err)
	s.True(out.CatalogVersionMismatch)
	s.True(out.Preset.IsDefault)
}

func (s *OrchestratorTestSuite) TestDiffFollowsSessionPreset() {
	preset := s.createPreset("Default", true, weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: true, Count: count(4)})

	out, err := s.orch.Diff(s.ctx, &customization.DiffInput{SessionID: sessionID, Tier: weapons.TierStarting})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)
	s.Equal(composition.DiffKindCountChanged, out.Entries[0].Kind)
	s.Equal(3, out.Entries[0].DefaultCount)
	s.Equal(4, out.Entries[0].CustomCount)

	_, err = s.orch.DeletePreset(s.ctx, &customization.DeletePresetInput{ID: preset.ID})
	s.Require().NoError(err)

	out, err = s.orch.Diff(s.ctx, &customization.DiffInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Empty(out.Entries)

	_, err = s.orch.Diff(s.ctx, &customization.DiffInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeletePreset() {
	preset := s.createPreset("Temp", false)

	_, err := s.orch.DeletePreset(s.ctx, &customization.DeletePresetInput{ID: preset.ID})
	s.Require().NoError(err)

	_, err = s.orch.GetPreset(s.ctx, &customization.GetPresetInput{ID: preset.ID})
	s.True(errors.IsNotFound(err))

	_, err = s.orch.DeletePreset(s.ctx, &customization.DeletePresetInput{ID: preset.ID})
	s.True(errors.IsNotFound(err))
}
