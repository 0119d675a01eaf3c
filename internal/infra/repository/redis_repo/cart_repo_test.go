package redis_repo

import (
	"context"
	"os"
	"testing"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CartRepoTestSuite struct {
	suite.Suite
	cartRepo *CartRepo
}

// 需要本機redis, 用 TEST_REDIS_ADDR 開關
func (suite *CartRepoTestSuite) SetupSuite() {
	if os.Getenv("TEST_REDIS_ADDR") == "" {
		suite.T().Skip("TEST_REDIS_ADDR not set, skipping redis integration tests")
	}
}

func (suite *CartRepoTestSuite) SetupTest() {
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("TEST_REDIS_ADDR"),
		Password: os.Getenv("TEST_REDIS_PASSWORD"),
		DB:       1, // 用測試DB
	})
	rdb.FlushDB(context.Background())
	suite.cartRepo = NewCartRepo(rdb)
}

func TestCartRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepoTestSuite))
}

func testCartLine(id string, quantity int) model.CartItem {
	return model.CartItem{
		CartItemID: id,
		UserID:     1,
		Item: model.MenuItem{
			Name:  "Margherita",
			Price: decimal.NewFromFloat(10.99),
			Options: []model.Option{
				{Name: "Extra cheese", Value: true},
			},
		},
		Quantity: quantity,
	}
}

func (suite *CartRepoTestSuite) TestInsertAndLoadCartLines() {
	ctx := context.Background()

	err := suite.cartRepo.InsertCartLine(ctx, testCartLine("line-1", 2))
	suite.Require().NoError(err)

	lines, err := suite.cartRepo.LoadCartLines(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.Equal("line-1", lines[0].CartItemID)
	suite.Equal(2, lines[0].Quantity)
	// JSON來回後快照內容不變
	suite.True(decimal.NewFromFloat(10.99).Equal(lines[0].Item.Price))
	suite.True(lines[0].Item.Options[0].Value)
}

func (suite *CartRepoTestSuite) TestUpdateCartLineQuantity() {
	ctx := context.Background()

	suite.cartRepo.InsertCartLine(ctx, testCartLine("line-1", 1))

	err := suite.cartRepo.UpdateCartLineQuantity(ctx, 1, "line-1", 5)
	suite.Require().NoError(err)

	lines, err := suite.cartRepo.LoadCartLines(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(5, lines[0].Quantity)
}

// 無選項商品的快照帶空陣列, 數量更新後重新載入必須仍可解析
func (suite *CartRepoTestSuite) TestUpdateCartLineQuantity_NoOptionLine() {
	ctx := context.Background()

	line := model.CartItem{
		CartItemID: "line-1",
		UserID:     1,
		Item: model.MenuItem{
			Name:        "Lasagna",
			Price:       decimal.NewFromFloat(14.5),
			Ingredients: []model.Ingredient{},
			Options:     []model.Option{},
		},
		Quantity: 1,
	}
	suite.Require().NoError(suite.cartRepo.InsertCartLine(ctx, line))

	err := suite.cartRepo.UpdateCartLineQuantity(ctx, 1, "line-1", 2)
	suite.Require().NoError(err)

	lines, err := suite.cartRepo.LoadCartLines(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.Equal(2, lines[0].Quantity)
	suite.Empty(lines[0].Item.Options)
	suite.Empty(lines[0].Item.Ingredients)
}

func (suite *CartRepoTestSuite) TestUpdateCartLineQuantity_ZeroDeletes() {
	ctx := context.Background()

	suite.cartRepo.InsertCartLine(ctx, testCartLine("line-1", 1))

	err := suite.cartRepo.UpdateCartLineQuantity(ctx, 1, "line-1", 0)
	suite.Require().NoError(err)

	lines, err := suite.cartRepo.LoadCartLines(ctx, 1)
	suite.Require().NoError(err)
	suite.Empty(lines)
}

func (suite *CartRepoTestSuite) TestUpdateCartLineQuantity_NotFound() {
	ctx := context.Background()

	err := suite.cartRepo.UpdateCartLineQuantity(ctx, 1, "missing", 3)
	suite.Require().ErrorIs(err, repository.ErrCartLineNotFound)
}

func (suite *CartRepoTestSuite) TestDeleteCartLine() {
	ctx := context.Background()

	suite.cartRepo.InsertCartLine(ctx, testCartLine("line-1", 1))

	err := suite.cartRepo.DeleteCartLine(ctx, 1, "line-1")
	suite.Require().NoError(err)

	err = suite.cartRepo.DeleteCartLine(ctx, 1, "line-1")
	suite.Require().ErrorIs(err, repository.ErrCartLineNotFound)
}

func (suite *CartRepoTestSuite) TestClearCart() {
	ctx := context.Background()

	suite.cartRepo.InsertCartLine(ctx, testCartLine("line-1", 1))
	suite.cartRepo.InsertCartLine(ctx, testCartLine("line-2", 3))

	err := suite.cartRepo.ClearCart(ctx, 1)
	suite.Require().NoError(err)

	lines, err := suite.cartRepo.LoadCartLines(ctx, 1)
	suite.Require().NoError(err)
	suite.Empty(lines)
}
