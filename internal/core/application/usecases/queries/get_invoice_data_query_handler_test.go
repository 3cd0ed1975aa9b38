package queries_test

import (
	"context"
	"testing"

	"tableside/internal/adapters/out/postgres/customerrepo"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/adapters/out/postgres/sessionrepo"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/customer"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type GetInvoiceDataQueryHandlerTestSuite struct {
	suite.Suite
	container    *tcpostgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetInvoiceDataQueryHandler
	orderRepo    *orderrepo.GormOrderRepository
	sessionRepo  *sessionrepo.GormSessionRepository
	customerRepo *customerrepo.GormCustomerRepository
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) SetupSuite() {
	container, db, err := startPostgres(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	handler, err := queries.NewGetInvoiceDataQueryHandler(db, decimal.NewFromFloat(0.18))
	suite.Require().NoError(err)
	suite.handler = handler

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
	suite.sessionRepo = sessionrepo.NewGormSessionRepository(db, mockAggregateTracker{})
	suite.customerRepo = customerrepo.NewGormCustomerRepository(db, mockAggregateTracker{})
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE dining_sessions, orders, order_items, customers, menu_items").Error)
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) seedSessionWithCustomer() *session.Session {
	ctx := context.Background()

	diner, err := customer.NewCustomer(kernel.NewUUID(), "Arjun", "+919800000002", "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.customerRepo.Add(ctx, diner))

	customerID := diner.ID()
	diningSession, err := session.NewSession(kernel.NewUUID(), kernel.NewSessionToken(), "T2", &customerID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.sessionRepo.Add(ctx, diningSession))

	return diningSession
}

// seedBillableOrder places an order with one line for a freshly seeded dish.
func (suite *GetInvoiceDataQueryHandlerTestSuite) seedBillableOrder(
	sessionID kernel.UUID, dishName, price string, quantity int, status order.Status,
) *order.Order {
	dishID, err := seedMenuItem(suite.db, dishName, price)
	suite.Require().NoError(err)

	unitPrice, err := kernel.NewMoneyFromString(price)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), dishID, quantity, unitPrice, "")
	suite.Require().NoError(err)

	placed, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewOrderNumber(),
		sessionID, kernel.NewUUID(), "T2",
		[]*order.Item{item}, order.PaymentMethodUPI, "")
	suite.Require().NoError(err)

	if status != order.Pending {
		suite.Require().NoError(placed.ChangeStatus(status))
	}
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), placed))

	return placed
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) TestHandle_ComputesTaxBreakdown() {
	diningSession := suite.seedSessionWithCustomer()
	first := suite.seedBillableOrder(diningSession.ID(), "Paneer Tikka", "125.00", 2, order.Served)
	second := suite.seedBillableOrder(diningSession.ID(), "Veg Biryani", "330.00", 1, order.Served)

	query, err := queries.NewGetInvoiceDataQuery(diningSession.Token())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.SessionID.IsEqual(diningSession.ID()))
	suite.Equal(diningSession.Token(), result.Token)
	suite.Equal("T2", result.TableNumber)
	suite.Equal("Arjun", result.CustomerName)
	suite.False(result.IssuedAt.IsZero())

	suite.Require().Len(result.Lines, 2)
	suite.Equal(first.Number(), result.Lines[0].OrderNumber)
	suite.Equal("Paneer Tikka", result.Lines[0].MenuItemName)
	suite.Equal(2, result.Lines[0].Quantity)
	suite.InDelta(125.00, result.Lines[0].UnitPrice, 0.001)
	suite.InDelta(250.00, result.Lines[0].Subtotal, 0.001)
	suite.Equal(second.Number(), result.Lines[1].OrderNumber)
	suite.Equal("Veg Biryani", result.Lines[1].MenuItemName)
	suite.Equal(1, result.Lines[1].Quantity)
	suite.InDelta(330.00, result.Lines[1].Subtotal, 0.001)

	suite.InDelta(580.00, result.Subtotal, 0.001)
	suite.InDelta(0.18, result.TaxRate, 0.0001)
	suite.InDelta(104.40, result.TaxAmount, 0.001)
	suite.InDelta(684.40, result.GrandTotal, 0.001)
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) TestHandle_ExcludesCancelledOrders() {
	diningSession := suite.seedSessionWithCustomer()
	kept := suite.seedBillableOrder(diningSession.ID(), "Veg Biryani", "330.00", 1, order.Served)
	suite.seedBillableOrder(diningSession.ID(), "Paneer Tikka", "250.00", 1, order.Cancelled)

	query, err := queries.NewGetInvoiceDataQuery(diningSession.Token())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 1)
	suite.Equal(kept.Number(), result.Lines[0].OrderNumber)
	suite.InDelta(330.00, result.Subtotal, 0.001)
	suite.InDelta(59.40, result.TaxAmount, 0.001)
	suite.InDelta(389.40, result.GrandTotal, 0.001)
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) TestHandle_OnlyCancelledOrders_YieldsZeroTotals() {
	diningSession := suite.seedSessionWithCustomer()
	suite.seedBillableOrder(diningSession.ID(), "Paneer Tikka", "250.00", 1, order.Cancelled)

	query, err := queries.NewGetInvoiceDataQuery(diningSession.Token())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result.Lines)
	suite.InDelta(0.00, result.Subtotal, 0.001)
	suite.InDelta(0.00, result.TaxAmount, 0.001)
	suite.InDelta(0.00, result.GrandTotal, 0.001)
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) TestHandle_UnknownSession_ReturnsNotFound() {
	query, err := queries.NewGetInvoiceDataQuery(kernel.NewSessionToken())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetInvoiceDataQueryHandlerTestSuite) TestNewHandler_NegativeTaxRate_ReturnsError() {
	_, err := queries.NewGetInvoiceDataQueryHandler(suite.db, decimal.NewFromFloat(-0.05))

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func TestGetInvoiceDataQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetInvoiceDataQueryHandlerTestSuite))
}
