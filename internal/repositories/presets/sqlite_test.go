package presets_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite

	ctx  context.Context
	repo presets.Repository
	now  time.Time
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	repo, err := presets.NewSQLite(&presets.SQLiteConfig{DB: testutils.CreateTestSQLite(s.T())})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) preset(id, name string, specs ...weapons.CustomizationSpec) *weapons.Preset {
	p := &weapons.Preset{
		ID:        id,
		Name:      name,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	for _, spec := range specs {
		c, err := weapons.NewPresetCustomization(id, spec)
		s.Require().NoError(err)
		p.Customizations = append(p.Customizations, c)
	}
	return p
}

func intPtr(n int) *int { return &n }

func (s *SQLiteRepositoryTestSuite) TestCreateAndGet() {
	p := s.preset("preset-1", "Hard Mode",
		weapons.CustomizationSpec{DefinitionID: "starting/pistol/core", Enabled: false},
		weapons.CustomizationSpec{DefinitionID: "regular/chainsaw/core", Enabled: true, Count: intPtr(5), Priority: 2},
	)

	_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: p})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, presets.GetInput{ID: "preset-1"})
	s.Require().NoError(err)
	s.Equal("Hard Mode", out.Preset.Name)
	s.True(s.now.Equal(out.Preset.CreatedAt))
	s.Require().Len(out.Preset.Customizations, 2)

	first := out.Preset.Customizations[0]
	s.Equal("starting/pistol/core", first.DefinitionID)
	s.False(first.Enabled)
	s.Nil(first.Count)
	s.Equal(weapons.OwnerKindPreset, first.Owner.Kind)
	s.Equal("preset-1", first.Owner.ID)

	second := out.Preset.Customizations[1]
	s.Require().NotNil(second.Count)
	s.Equal(5, *second.Count)
	s.Equal(2, second.Priority)
}

func (s *SQLiteRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: s.preset("preset-1", "A")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, presets.CreateInput{Preset: s.preset("preset-1", "B")})
	s.True(errors.IsAlreadyExists(err))
}

func (s *SQLiteRepositoryTestSuite) TestCreateValidation() {
	testCases := []struct {
		name   string
		preset *weapons.Preset
	}{
		{name: "nil preset", preset: nil},
		{name: "missing id", preset: &weapons.Preset{Name: "x"}},
		{name: "blank name", preset: &weapons.Preset{ID: "p", Name: "  "}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: tc.preset})
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *SQLiteRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, presets.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *SQLiteRepositoryTestSuite) TestListOrderedByName() {
	for _, p := range []*weapons.Preset{s.preset("b", "Zombies Only"), s.preset("a", "Arsenal")} {
		_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: p})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, presets.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Presets, 2)
	s.Equal("Arsenal", out.Presets[0].Name)
	s.Equal("Zombies Only", out.Presets[1].Name)
	s.NotNil(out.Presets[0].Customizations)
}

func (s *SQLiteRepositoryTestSuite) TestUpdateReplacesCustomizations() {
	p := s.preset("preset-1", "Old",
		weapons.CustomizationSpec{DefinitionID: "starting/pistol/core"},
		weapons.CustomizationSpec{DefinitionID: "starting/crowbar/core"},
	)
	_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: p})
	s.Require().NoError(err)

	updated := s.preset("preset-1", "New",
		weapons.CustomizationSpec{DefinitionID: "regular/axe/core", Enabled: true, Count: intPtr(2)},
	)
	updated.UpdatedAt = s.now.Add(time.Hour)
	_, err = s.repo.Update(s.ctx, presets.UpdateInput{Preset: updated})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, presets.GetInput{ID: "preset-1"})
	s.Require().NoError(err)
	s.Equal("New", out.Preset.Name)
	s.Require().Len(out.Preset.Customizations, 1)
	s.Equal("regular/axe/core", out.Preset.Customizations[0].DefinitionID)
	s.True(updated.UpdatedAt.Equal(out.Preset.UpdatedAt))
}

func (s *SQLiteRepositoryTestSuite) TestUpdateNotFound() {
	_, err := s.repo.Update(s.ctx, presets.UpdateInput{Preset: s.preset("ghost", "Ghost")})
	s.True(errors.IsNotFound(err))
}

func (s *SQLiteRepositoryTestSuite) TestDelete() {
	p := s.preset("preset-1", "Doomed", weapons.CustomizationSpec{DefinitionID: "starting/pistol/core"})
	_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: p})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, presets.DeleteInput{ID: "preset-1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, presets.GetInput{ID: "preset-1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, presets.DeleteInput{ID: "preset-1"})
	s.True(errors.IsNotFound(err))
}

func (s *SQLiteRepositoryTestSuite) TestSetDefaultClearsOthers() {
	first := s.preset("first", "First")
	first.IsDefault = true
	_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: first})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, presets.CreateInput{Preset: s.preset("second", "Second")})
	s.Require().NoError(err)

	later := s.now.Add(time.Minute)
	out, err := s.repo.SetDefault(s.ctx, presets.SetDefaultInput{ID: "second", UpdatedAt: later})
	s.Require().NoError(err)
	s.Equal(1, out.Cleared)

	got, err := s.repo.Get(s.ctx, presets.GetInput{ID: "first"})
	s.Require().NoError(err)
	s.False(got.Preset.IsDefault)

	got, err = s.repo.Get(s.ctx, presets.GetInput{ID: "second"})
	s.Require().NoError(err)
	s.True(got.Preset.IsDefault)
	s.True(later.Equal(got.Preset.UpdatedAt))
}

func (s *SQLiteRepositoryTestSuite) TestSetDefaultNotFoundKeepsExisting() {
	first := s.preset("first", "First")
	first.IsDefault = true
	_, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: first})
	s.Require().NoError(err)

	_, err = s.repo.SetDefault(s.ctx, presets.SetDefaultInput{ID: "missing", UpdatedAt: s.now})
	s.True(errors.IsNotFound(err))

	got, err := s.repo.Get(s.ctx, presets.GetInput{ID: "first"})
	s.Require().NoError(err)
	s.True(got.Preset.IsDefault)
}

func (s *SQLiteRepositoryTestSuite) TestCreateDefaultClearsOthers() {
	first := s.preset("first", "First")
	first.IsDefault = true
	out, err := s.repo.Create(s.ctx, presets.CreateInput{Preset: first})
	s.Require().NoError(err)
	s.Zero(out.Cleared)

	second := s.preset("second", "Second")
	second.IsDefault = true
	out, err = s.repo.Create(s.ctx, presets.CreateInput{Preset: second})
	s.Require().NoError(err)
	s.Equal(1, out.Cleared)

	got, err := s.repo.Get(s.ctx, presets.GetInput{ID: "first"})
	s.Require().NoError(err)
	s.False(got.Preset.IsDefault)

	// A create that fails leaves the current default alone
	dup := s.preset("second", "Again")
	dup.IsDefault = true
	_, err = s.repo.Create(s.ctx, presets.CreateInput{Preset: dup})
	s.True(errors.IsAlreadyExists(err))

	list, err := s.repo.List(s.ctx, presets.ListInput{})
	s.Require().NoError(err)
	defaults := 0
	for _, p := range list.Presets {
		if p.IsDefault {
			defaults++
			s.Equal("second", p.ID)
		}
	}
	s.Equal(1, defaults)
}
