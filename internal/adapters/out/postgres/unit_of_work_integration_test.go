package postgres_test

import (
	"context"
	"testing"
	"time"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"tableside/internal/adapters/out/postgres"
	"tableside/internal/adapters/out/postgres/menurepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transactional behavior across the
// session, order, customer and menu repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))
	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE dining_sessions, orders, order_items, customers, menu_items").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedMenuItem(price string) kernel.UUID {
	id := kernel.NewUUID()
	amount, err := decimal.NewFromString(price)
	suite.Require().NoError(err)
	dto := menurepo.MenuItemDTO{
		ID:          id.Bytes(),
		Name:        "Masala Dosa",
		Category:    "mains",
		Price:       amount,
		IsAvailable: true,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) newSession(tableNumber string) *session.Session {
	s, err := session.NewSession(kernel.NewUUID(), kernel.NewSessionToken(), tableNumber, nil)
	suite.Require().NoError(err)
	return s
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(sessionID kernel.UUID, price string) *order.Order {
	amount, err := kernel.NewMoneyFromString(price)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, amount, "")
	suite.Require().NoError(err)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewOrderNumber(),
		sessionID, kernel.NewUUID(), "T5",
		[]*order.Item{item}, order.PaymentMethodUPI, "")
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	diningSession := suite.newSession("T5")
	suite.Require().NoError(uow.SessionRepository().Add(ctx, diningSession))

	placed := suite.newOrder(diningSession.ID(), "250.00")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))

	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	loadedSession, err := check.SessionRepository().Get(ctx, diningSession.ID())
	suite.Require().NoError(err)
	suite.True(loadedSession.IsActive())

	loadedOrder, err := check.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.True(loadedOrder.IsEqual(placed))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	diningSession := suite.newSession("T5")
	suite.Require().NoError(uow.SessionRepository().Add(ctx, diningSession))

	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err := check.SessionRepository().Get(ctx, diningSession.ID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMenuReader_ReadsSeededCatalog() {
	ctx := context.Background()
	dishID := suite.seedMenuItem("165.00")

	uow := suite.factory.Create()
	dish, err := uow.MenuReader().Get(ctx, dishID)
	suite.Require().NoError(err)
	suite.Equal("Masala Dosa", dish.Name())
	suite.True(dish.IsAvailable())

	catalog, err := uow.MenuReader().GetByIDs(ctx, []kernel.UUID{dishID, kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Len(catalog, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedInvisibleOutside() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	diningSession := suite.newSession("T6")
	suite.Require().NoError(uow.SessionRepository().Add(ctx, diningSession))

	outside := suite.factory.Create()
	_, err := outside.SessionRepository().GetActiveByTable(ctx, "T6")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := outside.SessionRepository().GetActiveByTable(ctx, "T6")
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(diningSession))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
