package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	"github.com/forgelight/forge-api/internal/repositories/costtable"
	rulesetrepo "github.com/forgelight/forge-api/internal/repositories/ruleset"
	"github.com/forgelight/forge-api/internal/seed"
	"github.com/forgelight/forge-api/internal/testutils"
)

type SeedTestSuite struct {
	suite.Suite
	loader   *seed.Loader
	rulesets rulesetrepo.Repository
	costs    costtable.Repository
	cleanup  func()
	ctx      context.Context
}

func TestSeedSuite(t *testing.T) {
	suite.Run(t, new(SeedTestSuite))
}

func (s *SeedTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	rulesets, err := rulesetrepo.NewRedis(&rulesetrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.rulesets = rulesets

	costs, err := costtable.NewRedis(&costtable.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.costs = costs

	loader, err := seed.NewLoader(&seed.Config{
		RulesetRepo:   rulesets,
		CostTableRepo: costs,
	})
	s.Require().NoError(err)
	s.loader = loader
}

func (s *SeedTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *SeedTestSuite) writeFile(dir, name, content string) {
	s.Require().NoError(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func (s *SeedTestSuite) TestLoadDirMergesFiles() {
	dir := s.T().TempDir()
	s.writeFile(dir, "damage_types.yml", `
damage_types:
  - id: dt_fire
    name: Fire
    mode: physical
  - id: dt_dread
    name: Dread
    mode: mental
`)
	s.writeFile(dir, "attributes.yml", `
attributes:
  - id: attr_reload
    name: Reload
    kind: weapon
    template: "Reload: spend [AttributeValue] actions to reload."
`)
	s.writeFile(dir, "costs.yml", `
config_rows:
  - category: rarity
    selector1: Common
    multiplier: 10
cost_rows:
  - category: protection
    selector1: PPV
    value: 5
  - category: attack_potency
    selector1: MELEE
    selector2: PHYSICAL
    value: 2
`)
	s.writeFile(dir, "notes.txt", "ignored")

	s.Require().NoError(s.loader.LoadDir(s.ctx, dir))

	rules, err := s.rulesets.Get(s.ctx, rulesetrepo.GetInput{})
	s.Require().NoError(err)
	s.Require().Len(rules.Ruleset.DamageTypes, 2)
	s.Assert().Equal(entities.DamageModeMental, rules.Ruleset.DamageTypes[1].Mode)
	s.Require().Len(rules.Ruleset.Attributes, 1)
	s.Assert().Equal(entities.ItemTypeWeapon, rules.Ruleset.Attributes[0].Kind)
	s.Assert().Empty(rules.Ruleset.Traits)

	tables, err := s.costs.Get(s.ctx, costtable.GetInput{})
	s.Require().NoError(err)
	s.Require().Len(tables.ConfigRows, 1)
	s.Assert().Equal("RARITY", tables.ConfigRows[0].Category)
	s.Require().Len(tables.CostRows, 2)
	s.Assert().Equal("PROTECTION", tables.CostRows[0].Category)
}

func (s *SeedTestSuite) TestLoadDirLeavesAbsentCollectionsAlone() {
	_, err := s.rulesets.Put(s.ctx, rulesetrepo.PutInput{
		Ruleset: entities.Ruleset{
			Traits: []entities.TraitTemplate{{ID: "trait_tough", Name: "Tough", Template: "x"}},
		},
		Collections: []rulesetrepo.Collection{rulesetrepo.CollectionTraits},
	})
	s.Require().NoError(err)

	dir := s.T().TempDir()
	s.writeFile(dir, "damage_types.yml", `
damage_types:
  - id: dt_fire
    name: Fire
    mode: physical
`)

	s.Require().NoError(s.loader.LoadDir(s.ctx, dir))

	rules, err := s.rulesets.Get(s.ctx, rulesetrepo.GetInput{})
	s.Require().NoError(err)
	s.Assert().Len(rules.Ruleset.Traits, 1)
	s.Assert().Len(rules.Ruleset.DamageTypes, 1)
}

func (s *SeedTestSuite) TestLoadDirEmptyDirectory() {
	err := s.loader.LoadDir(s.ctx, s.T().TempDir())
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *SeedTestSuite) TestLoadDirBadYAML() {
	dir := s.T().TempDir()
	s.writeFile(dir, "broken.yml", "damage_types: [not closed")

	err := s.loader.LoadDir(s.ctx, dir)
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "broken.yml")
}

func (s *SeedTestSuite) TestNewLoaderValidatesConfig() {
	_, err := seed.NewLoader(&seed.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}
