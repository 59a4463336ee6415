package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/catalog"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils"
	"github.com/KirkDiggler/weapon-deck-api/internal/testutils/builders"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite

	ctx  context.Context
	repo catalog.Repository
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	repo, err := catalog.NewSQLite(&catalog.SQLiteConfig{DB: testutils.CreateTestSQLite(s.T())})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) TestLoadEmpty() {
	out, err := s.repo.Load(s.ctx, catalog.LoadInput{})
	s.Require().NoError(err)
	s.Empty(out.Version)
	s.Empty(out.Definitions)
	s.NotNil(out.Instances)
}

func (s *SQLiteRepositoryTestSuite) TestApplyAndLoadRoundTrip() {
	b := builders.TwoByThree()
	b.Definitions()[0].Stats = weapons.CombatStats{RangeMin: 0, RangeMax: 1, Dice: 1, Accuracy: 4, Damage: 1}
	b.Definitions()[0].Abilities = weapons.Abilities{Noisy: true}
	importedAt := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	applied, err := s.repo.Apply(s.ctx, catalog.ApplyInput{
		Version:     "v1.2.0",
		ImportedAt:  importedAt,
		Definitions: b.Definitions(),
		Instances:   b.Instances(),
	})
	s.Require().NoError(err)
	s.Equal(2, applied.DefinitionsWritten)
	s.Equal(20, applied.InstancesCreated)

	out, err := s.repo.Load(s.ctx, catalog.LoadInput{})
	s.Require().NoError(err)
	s.Equal("v1.2.0", out.Version)
	s.True(importedAt.Equal(out.ImportedAt))
	s.Len(out.Instances, 20)
	s.Require().Len(out.Definitions, 2)

	byID := make(map[string]*weapons.CardDefinition)
	for _, def := range out.Definitions {
		byID[def.ID] = def
	}
	pistol := byID[weapons.DefinitionID(weapons.TierStarting, "Pistol", "core")]
	s.Require().NotNil(pistol)
	s.Equal(weapons.CategoryRanged, pistol.Category)
	s.True(pistol.Abilities.Noisy)
	s.Equal(4, pistol.Stats.Accuracy)
}

func (s *SQLiteRepositoryTestSuite) TestApplyIsIdempotentForInstances() {
	b := builders.TwoByThree()
	input := catalog.ApplyInput{Version: "v1.0.0", Definitions: b.Definitions(), Instances: b.Instances()}

	_, err := s.repo.Apply(s.ctx, input)
	s.Require().NoError(err)

	b.Definitions()[0].Deprecated = true
	input.Version = "v1.1.0"
	again, err := s.repo.Apply(s.ctx, input)
	s.Require().NoError(err)
	s.Zero(again.InstancesCreated)

	out, err := s.repo.Load(s.ctx, catalog.LoadInput{})
	s.Require().NoError(err)
	s.Equal("v1.1.0", out.Version)

	deprecated := 0
	for _, def := range out.Definitions {
		if def.Deprecated {
			deprecated++
		}
	}
	s.Equal(1, deprecated)
}

func (s *SQLiteRepositoryTestSuite) TestApplyRequiresVersion() {
	_, err := s.repo.Apply(s.ctx, catalog.ApplyInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteRepositoryTestSuite) TestNewSQLiteValidates() {
	_, err := catalog.NewSQLite(nil)
	s.Error(err)

	_, err = catalog.NewSQLite(&catalog.SQLiteConfig{})
	s.Error(err)
}
