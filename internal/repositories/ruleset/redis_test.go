package ruleset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	"github.com/forgelight/forge-api/internal/repositories/ruleset"
	"github.com/forgelight/forge-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    ruleset.Repository
	cleanup func()
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := ruleset.NewRedis(&ruleset.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := ruleset.NewRedis(&ruleset.RedisConfig{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGetEmptyStore() {
	out, err := s.repo.Get(s.ctx, ruleset.GetInput{})
	s.Require().NoError(err)
	s.Require().NotNil(out.Ruleset)
	s.Assert().Empty(out.Ruleset.DamageTypes)
	s.Assert().Empty(out.Ruleset.Traits)
}

func (s *RedisRepositoryTestSuite) TestPutAndGetSingleCollection() {
	_, err := s.repo.Put(s.ctx, ruleset.PutInput{
		Ruleset: entities.Ruleset{
			DamageTypes: []entities.DamageType{
				{ID: "dt_fire", Name: "Fire", Mode: entities.DamageModePhysical},
				{ID: "dt_dread", Name: "Dread", Mode: entities.DamageModeMental},
			},
		},
		Collections: []ruleset.Collection{ruleset.CollectionDamageTypes},
	})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, ruleset.GetInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Ruleset.DamageTypes, 2)
	s.Assert().Equal("Fire", out.Ruleset.DamageTypes[0].Name)
	s.Assert().Empty(out.Ruleset.Attributes)
}

func (s *RedisRepositoryTestSuite) TestPutLeavesOtherCollectionsUntouched() {
	_, err := s.repo.Put(s.ctx, ruleset.PutInput{
		Ruleset: entities.Ruleset{
			Attributes: []entities.ItemAttribute{
				{ID: "attr_reload", Name: "Reload", Kind: entities.ItemTypeWeapon, Template: "Reload: spend [AttributeValue] actions."},
			},
		},
		Collections: []ruleset.Collection{ruleset.CollectionAttributes},
	})
	s.Require().NoError(err)

	// Replacing traits must not clear attributes.
	_, err = s.repo.Put(s.ctx, ruleset.PutInput{
		Ruleset: entities.Ruleset{
			Traits: []entities.TraitTemplate{
				{ID: "trait_tough", Name: "Tough", Template: "Gain (ceil([MonsterLevel]/2)) extra hit points."},
			},
		},
		Collections: []ruleset.Collection{ruleset.CollectionTraits},
	})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, ruleset.GetInput{})
	s.Require().NoError(err)
	s.Assert().Len(out.Ruleset.Attributes, 1)
	s.Assert().Len(out.Ruleset.Traits, 1)
}

func (s *RedisRepositoryTestSuite) TestPutReplacesCollection() {
	put := func(names ...string) {
		types := make([]entities.DamageType, 0, len(names))
		for _, n := range names {
			types = append(types, entities.DamageType{ID: "dt_" + n, Name: n})
		}
		_, err := s.repo.Put(s.ctx, ruleset.PutInput{
			Ruleset:     entities.Ruleset{DamageTypes: types},
			Collections: []ruleset.Collection{ruleset.CollectionDamageTypes},
		})
		s.Require().NoError(err)
	}

	put("Fire", "Frost")
	put("Piercing")

	out, err := s.repo.Get(s.ctx, ruleset.GetInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Ruleset.DamageTypes, 1)
	s.Assert().Equal("Piercing", out.Ruleset.DamageTypes[0].Name)
}

func (s *RedisRepositoryTestSuite) TestPutRequiresCollections() {
	_, err := s.repo.Put(s.ctx, ruleset.PutInput{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestPutUnknownCollection() {
	_, err := s.repo.Put(s.ctx, ruleset.PutInput{
		Collections: []ruleset.Collection{ruleset.Collection("bogus")},
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}
