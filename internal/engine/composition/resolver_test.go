package composition_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils/builders"
)

type ResolverTestSuite struct {
	suite.Suite

	handle   *weapons.CatalogHandle
	resolver composition.Resolver

	pistol  string
	crowbar string
	axe     string
	old     string
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	s.handle = builders.NewCatalogBuilder().
		WithCard(weapons.TierStarting, "Pistol", weapons.CategoryRanged, 3).
		WithCard(weapons.TierStarting, "Crowbar", weapons.CategoryMelee, 2).
		WithCard(weapons.TierStarting, "Fire Axe", weapons.CategoryMelee, 0).
		WithDeprecatedCard(weapons.TierStarting, "Old Pipe", 2).
		WithCard(weapons.TierRegular, "Shotgun", weapons.CategoryRanged, 4).
		BuildHandle()

	var err error
	s.resolver, err = composition.NewResolver(&composition.Config{Catalog: s.handle})
	s.Require().NoError(err)

	s.pistol = weapons.DefinitionID(weapons.TierStarting, "Pistol", "core")
	s.crowbar = weapons.DefinitionID(weapons.TierStarting, "Crowbar", "core")
	s.axe = weapons.DefinitionID(weapons.TierStarting, "Fire Axe", "core")
	s.old = weapons.DefinitionID(weapons.TierStarting, "Old Pipe", "core")
}

func (s *ResolverTestSuite) preset(specs ...weapons.CustomizationSpec) *weapons.Preset {
	p := &weapons.Preset{ID: "preset-1", Name: "Hard mode"}
	for _, spec := range specs {
		c, err := weapons.NewPresetCustomization(p.ID, spec)
		s.Require().NoError(err)
		p.Customizations = append(p.Customizations, c)
	}
	return p
}

func (s *ResolverTestSuite) override(specs ...weapons.CustomizationSpec) *weapons.SessionOverride {
	o := &weapons.SessionOverride{SessionID: "sess"}
	for _, spec := range specs {
		c, err := weapons.NewSessionCustomization(o.SessionID, spec)
		s.Require().NoError(err)
		o.Customizations = append(o.Customizations, c)
	}
	return o
}

func count(n int) *int { return &n }

func (s *ResolverTestSuite) TestDefaults() {
	got, err := s.resolver.Resolve(&composition.ResolveInput{Tier: weapons.TierStarting})
	s.Require().NoError(err)

	s.Equal(map[string]int{s.pistol: 3, s.crowbar: 2}, got.Counts)
	s.Len(got.Instances, 5)
	s.Equal(5, got.Size())
	s.Equal(weapons.InstanceID(s.crowbar, 0), got.Instances[0].ID, "instances follow catalog order")
}

func (s *ResolverTestSuite) TestPresetThenOverridePrecedence() {
	preset := s.preset(
		weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: false},
		weapons.CustomizationSpec{DefinitionID: s.crowbar, Enabled: true, Count: count(5)},
	)
	override := s.override(
		weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: true, Count: count(1)},
	)

	got, err := s.resolver.Resolve(&composition.ResolveInput{Tier: weapons.TierStarting, Preset: preset})
	s.Require().NoError(err)
	s.Equal(map[string]int{s.crowbar: 5}, got.Counts)

	got, err = s.resolver.Resolve(&composition.ResolveInput{
		Tier:     weapons.TierStarting,
		Preset:   preset,
		Override: override,
	})
	s.Require().NoError(err)
	s.Equal(map[string]int{s.pistol: 1, s.crowbar: 5}, got.Counts)
	s.Len(got.Instances, 6)
}

func (s *ResolverTestSuite) TestEnableDeprecatedAndZeroDefault() {
	got, err := s.resolver.Resolve(&composition.ResolveInput{
		Tier: weapons.TierStarting,
		Override: s.override(
			weapons.CustomizationSpec{DefinitionID: s.old, Enabled: true},
			weapons.CustomizationSpec{DefinitionID: s.axe, Enabled: true, Count: count(2)},
		),
	})
	s.Require().NoError(err)
	s.Equal(2, got.Counts[s.old])
	s.Equal(2, got.Counts[s.axe])
}

func (s *ResolverTestSuite) TestHeldInstancesCountButAreNotPlaced() {
	held := []string{weapons.InstanceID(s.pistol, 1), weapons.InstanceID(s.pistol, 7)}

	got, err := s.resolver.Resolve(&composition.ResolveInput{Tier: weapons.TierStarting, Held: held})
	s.Require().NoError(err)

	s.Equal(2, got.HeldCount)
	s.Equal(5, got.Size())
	for _, inst := range got.Instances {
		s.NotContains(held, inst.ID)
	}
}

func (s *ResolverTestSuite) TestCountBeyondMintedIsInconsistent() {
	// Bypass the constructor bound to simulate a catalog that minted too few copies
	c := &weapons.Customization{
		CustomizationSpec: weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: true, Count: count(weapons.MaxCountOverride + 5)},
		Owner:             weapons.Owner{Kind: weapons.OwnerKindSession, ID: "sess"},
	}
	_, err := s.resolver.Resolve(&composition.ResolveInput{
		Tier:     weapons.TierStarting,
		Override: &weapons.SessionOverride{SessionID: "sess", Customizations: []*weapons.Customization{c}},
	})
	s.Require().Error(err)
	s.True(errors.IsCatalogInconsistency(err))
}

func (s *ResolverTestSuite) TestAllDisabledIsEmpty() {
	got, err := s.resolver.Resolve(&composition.ResolveInput{
		Tier: weapons.TierStarting,
		Override: s.override(
			weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: false},
			weapons.CustomizationSpec{DefinitionID: s.crowbar, Enabled: false},
		),
	})
	s.Require().NoError(err)
	s.Empty(got.Instances)
	s.Zero(got.Size())
}

func (s *ResolverTestSuite) TestInvalidInput() {
	_, err := s.resolver.Resolve(&composition.ResolveInput{Tier: "mythic"})
	s.True(errors.IsInvalidArgument(err))

	empty, err := composition.NewResolver(&composition.Config{Catalog: weapons.NewCatalogHandle(nil)})
	s.Require().NoError(err)
	_, err = empty.Resolve(&composition.ResolveInput{Tier: weapons.TierStarting})
	s.True(errors.IsFailedPrecondition(err))

	_, err = composition.NewResolver(&composition.Config{})
	s.Error(err)
}

func (s *ResolverTestSuite) TestDiff() {
	preset := s.preset(
		weapons.CustomizationSpec{DefinitionID: s.pistol, Enabled: false},
		weapons.CustomizationSpec{DefinitionID: s.crowbar, Enabled: true, Count: count(4)},
		weapons.CustomizationSpec{DefinitionID: s.old, Enabled: true, Count: count(1)},
	)

	entries, err := s.resolver.Diff(&composition.DiffInput{Tier: weapons.TierStarting, Preset: preset})
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	byID := make(map[string]*composition.DiffEntry)
	for _, e := range entries {
		byID[e.DefinitionID] = e
	}

	s.Equal(composition.DiffKindDisabled, byID[s.pistol].Kind)
	s.Equal(3, byID[s.pistol].DefaultCount)

	s.Equal(composition.DiffKindCountChanged, byID[s.crowbar].Kind)
	s.Equal(2, byID[s.crowbar].DefaultCount)
	s.Equal(4, byID[s.crowbar].CustomCount)

	s.Equal(composition.DiffKindEnabled, byID[s.old].Kind)
	s.Equal("Old Pipe", byID[s.old].Name)
	s.Equal(1, byID[s.old].CustomCount)
}

func (s *ResolverTestSuite) TestDiffNoCustomizations() {
	entries, err := s.resolver.Diff(&composition.DiffInput{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ResolverTestSuite) TestDefaultPresetMostRecentWins() {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	presets := []*weapons.Preset{
		{ID: "a", IsDefault: true, UpdatedAt: now},
		{ID: "b", IsDefault: false, UpdatedAt: now.Add(time.Hour)},
		{ID: "c", IsDefault: true, UpdatedAt: now.Add(time.Minute)},
	}

	chosen, flagged := composition.DefaultPreset(presets)
	s.Equal("c", chosen.ID)
	s.Equal(2, flagged)

	chosen, flagged = composition.DefaultPreset(nil)
	s.Nil(chosen)
	s.Zero(flagged)
}
