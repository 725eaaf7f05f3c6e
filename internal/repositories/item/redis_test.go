package item_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	"github.com/forgelight/forge-api/internal/repositories/item"
	"github.com/forgelight/forge-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo      item.Repository
	miniRedis *miniredis.Miniredis
	cleanup   func()
	ctx       context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedisClientWithMini(s.T())
	s.miniRedis = mr
	s.cleanup = cleanup

	repo, err := item.NewRedis(&item.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func testItem(id, directorID, name string) *entities.Item {
	return &entities.Item{
		ID:         id,
		DirectorID: directorID,
		Name:       name,
		Rarity:     "Common",
		Level:      3,
		Config: entities.ItemConfig{
			Type: entities.ItemTypeArmor,
			PPV:  2,
		},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, item.CreateInput{Item: testItem("item_1", "dir_1", "Iron Cuirass")})
	s.Require().NoError(err)
	s.Require().NotNil(created.Item)

	s.Assert().True(s.miniRedis.Exists("item:item_1"))

	got, err := s.repo.Get(s.ctx, item.GetInput{ID: "item_1"})
	s.Require().NoError(err)
	s.Assert().Equal("Iron Cuirass", got.Item.Name)
	s.Assert().Equal(int32(2), got.Item.Config.PPV)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	testCases := []struct {
		name string
		item *entities.Item
	}{
		{name: "nil item", item: nil},
		{name: "missing ID", item: testItem("", "dir_1", "Blade")},
		{name: "missing director", item: testItem("item_1", "", "Blade")},
		{name: "missing name", item: testItem("item_1", "dir_1", "")},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, item.CreateInput{Item: tc.item})
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, item.CreateInput{Item: testItem("item_1", "dir_1", "Blade")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, item.CreateInput{Item: testItem("item_1", "dir_2", "Other")})
	s.Require().Error(err)
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, item.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	_, err := s.repo.Create(s.ctx, item.CreateInput{Item: testItem("item_1", "dir_1", "Blade")})
	s.Require().NoError(err)

	updated := testItem("item_1", "dir_1", "Blade of Frost")
	updated.Config.VRP = []entities.VRPEntry{
		{Kind: entities.VRPResistance, Magnitude: 2, DamageType: "Frost"},
	}
	_, err = s.repo.Update(s.ctx, item.UpdateInput{Item: updated})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, item.GetInput{ID: "item_1"})
	s.Require().NoError(err)
	s.Assert().Equal("Blade of Frost", got.Item.Name)
	s.Require().Len(got.Item.Config.VRP, 1)
}

func (s *RedisRepositoryTestSuite) TestUpdateMissingItem() {
	_, err := s.repo.Update(s.ctx, item.UpdateInput{Item: testItem("missing", "dir_1", "Blade")})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateMovesDirectorIndex() {
	_, err := s.repo.Create(s.ctx, item.CreateInput{Item: testItem("item_1", "dir_1", "Blade")})
	s.Require().NoError(err)

	_, err = s.repo.Update(s.ctx, item.UpdateInput{Item: testItem("item_1", "dir_2", "Blade")})
	s.Require().NoError(err)

	oldList, err := s.repo.ListByDirector(s.ctx, item.ListByDirectorInput{DirectorID: "dir_1"})
	s.Require().NoError(err)
	s.Assert().Empty(oldList.Items)

	newList, err := s.repo.ListByDirector(s.ctx, item.ListByDirectorInput{DirectorID: "dir_2"})
	s.Require().NoError(err)
	s.Require().Len(newList.Items, 1)
	s.Assert().Equal("item_1", newList.Items[0].ID)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, item.CreateInput{Item: testItem("item_1", "dir_1", "Blade")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, item.DeleteInput{ID: "item_1"})
	s.Require().NoError(err)

	s.Assert().False(s.miniRedis.Exists("item:item_1"))

	_, err = s.repo.Get(s.ctx, item.GetInput{ID: "item_1"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))

	list, err := s.repo.ListByDirector(s.ctx, item.ListByDirectorInput{DirectorID: "dir_1"})
	s.Require().NoError(err)
	s.Assert().Empty(list.Items)
}

func (s *RedisRepositoryTestSuite) TestDeleteMissing() {
	_, err := s.repo.Delete(s.ctx, item.DeleteInput{ID: "missing"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListByDirectorSortsByName() {
	for _, it := range []*entities.Item{
		testItem("item_2", "dir_1", "Warhammer"),
		testItem("item_1", "dir_1", "Buckler"),
		testItem("item_3", "dir_2", "Other Director"),
	} {
		_, err := s.repo.Create(s.ctx, item.CreateInput{Item: it})
		s.Require().NoError(err)
	}

	list, err := s.repo.ListByDirector(s.ctx, item.ListByDirectorInput{DirectorID: "dir_1"})
	s.Require().NoError(err)
	s.Require().Len(list.Items, 2)
	s.Assert().Equal("Buckler", list.Items[0].Name)
	s.Assert().Equal("Warhammer", list.Items[1].Name)
}

func (s *RedisRepositoryTestSuite) TestListByDirectorSkipsStaleIndexEntries() {
	_, err := s.repo.Create(s.ctx, item.CreateInput{Item: testItem("item_1", "dir_1", "Blade")})
	s.Require().NoError(err)

	// Simulate an index entry whose blob is gone.
	s.miniRedis.Del("item:item_1")

	list, err := s.repo.ListByDirector(s.ctx, item.ListByDirectorInput{DirectorID: "dir_1"})
	s.Require().NoError(err)
	s.Assert().Empty(list.Items)
}
