package queries_test

import (
	"context"
	"testing"

	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type GetKitchenOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetKitchenOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) SetupSuite() {
	container, db, err := startPostgres(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.handler = queries.NewGetKitchenOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE dining_sessions, orders, order_items, customers, menu_items").Error)
}

// seedOrderInStatus places an order with one line against a seeded menu item
// and walks it to the requested status.
func (suite *GetKitchenOrdersQueryHandlerTestSuite) seedOrderInStatus(status order.Status) *order.Order {
	ctx := context.Background()

	dishID, err := seedMenuItem(suite.db, "Veg Biryani", "180.00")
	suite.Require().NoError(err)

	unitPrice, err := kernel.NewMoneyFromString("180.00")
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), dishID, 1, unitPrice, "no onions")
	suite.Require().NoError(err)

	placed, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewOrderNumber(),
		kernel.NewUUID(), kernel.NewUUID(), "T3",
		[]*order.Item{item}, order.PaymentMethodCard, "")
	suite.Require().NoError(err)

	if status != order.Pending {
		suite.Require().NoError(placed.ChangeStatus(status))
	}
	suite.Require().NoError(suite.orderRepo.Add(ctx, placed))

	return placed
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetKitchenOrdersQuery("")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) TestHandle_NoFilter_ReturnsOnlyPipelineOrders() {
	pending := suite.seedOrderInStatus(order.Pending)
	preparing := suite.seedOrderInStatus(order.Preparing)
	ready := suite.seedOrderInStatus(order.Ready)
	suite.seedOrderInStatus(order.Served)
	suite.seedOrderInStatus(order.Cancelled)

	query, err := queries.NewGetKitchenOrdersQuery("")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}
	suite.True(resultIDs[pending.ID()])
	suite.True(resultIDs[preparing.ID()])
	suite.True(resultIDs[ready.ID()])
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) TestHandle_WithFilter_ReturnsOnlyMatchingStatus() {
	suite.seedOrderInStatus(order.Pending)
	preparing := suite.seedOrderInStatus(order.Preparing)

	query, err := queries.NewGetKitchenOrdersQuery("preparing")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(preparing.ID()))
	suite.Equal("preparing", result[0].Status)
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) TestHandle_OrdersComeBackOldestFirst() {
	first := suite.seedOrderInStatus(order.Pending)
	second := suite.seedOrderInStatus(order.Pending)
	third := suite.seedOrderInStatus(order.Pending)

	query, err := queries.NewGetKitchenOrdersQuery("")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(first.ID()))
	suite.True(result[1].ID.IsEqual(second.ID()))
	suite.True(result[2].ID.IsEqual(third.ID()))
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) TestHandle_AttachesLinesWithMenuNames() {
	suite.seedOrderInStatus(order.Pending)

	query, err := queries.NewGetKitchenOrdersQuery("")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Require().Len(result[0].Items, 1)
	suite.Equal("Veg Biryani", result[0].Items[0].MenuItemName)
	suite.Equal(1, result[0].Items[0].Quantity)
	suite.Equal("no onions", result[0].Items[0].SpecialInstructions)
}

func (suite *GetKitchenOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetKitchenOrdersQuery

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetKitchenOrdersQuery constructor")
}

func TestGetKitchenOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetKitchenOrdersQueryHandlerTestSuite))
}
