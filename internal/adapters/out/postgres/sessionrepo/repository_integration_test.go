package sessionrepo_test

import (
	"context"
	"testing"
	"time"

	"tableside/internal/adapters/out/postgres/sessionrepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// SessionRepositoryIntegrationTestSuite provides integration tests for
// SessionRepository, including the single-active-session-per-table index.
type SessionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *sessionrepo.GormSessionRepository
	tracker    *MockAggregateTracker
}

func (suite *SessionRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&sessionrepo.SessionDTO{}))
	suite.Require().NoError(db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_dining_sessions_one_active_per_table
		ON dining_sessions (table_number)
		WHERE status = 'ACTIVE'
	`).Error)
}

func (suite *SessionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE dining_sessions").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = sessionrepo.NewGormSessionRepository(suite.db, suite.tracker)
}

func (suite *SessionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SessionRepositoryIntegrationTestSuite) createTestSession(tableNumber string) *session.Session {
	customerID := kernel.NewUUID()
	s, err := session.NewSession(kernel.NewUUID(), kernel.NewSessionToken(), tableNumber, &customerID)
	suite.Require().NoError(err)
	return s
}

func (suite *SessionRepositoryIntegrationTestSuite) TestAdd_ValidSession_Success() {
	ctx := context.Background()
	testSession := suite.createTestSession("T5")

	suite.tracker.On("TrackAggregate", testSession.ID(), testSession).Once()

	err := suite.repository.Add(ctx, testSession)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, testSession.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testSession))
	suite.Equal(testSession.Token(), loaded.Token())
	suite.Equal("T5", loaded.TableNumber())
	suite.True(loaded.IsActive())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *SessionRepositoryIntegrationTestSuite) TestAdd_SecondActiveForTable_ReturnsConflict() {
	ctx := context.Background()
	first := suite.createTestSession("T5")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestSession("T5")
	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestAdd_AfterClosing_AllowsNewSession() {
	ctx := context.Background()
	first := suite.createTestSession("T5")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	suite.Require().NoError(first.Close())
	suite.Require().NoError(suite.repository.CloseActive(ctx, first))

	second := suite.createTestSession("T5")
	suite.Require().NoError(suite.repository.Add(ctx, second))
}

func (suite *SessionRepositoryIntegrationTestSuite) TestGetActiveByTable() {
	ctx := context.Background()
	testSession := suite.createTestSession("T7")
	suite.tracker.On("TrackAggregate", testSession.ID(), testSession).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testSession))

	loaded, err := suite.repository.GetActiveByTable(ctx, "T7")
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testSession))

	_, err = suite.repository.GetActiveByTable(ctx, "T8")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestGetActiveByTable_IgnoresClosed() {
	ctx := context.Background()
	testSession := suite.createTestSession("T7")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testSession))
	suite.Require().NoError(testSession.Close())
	suite.Require().NoError(suite.repository.CloseActive(ctx, testSession))

	_, err := suite.repository.GetActiveByTable(ctx, "T7")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestGetActiveOlderThan() {
	ctx := context.Background()
	testSession := suite.createTestSession("T2")
	suite.tracker.On("TrackAggregate", testSession.ID(), testSession).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testSession))

	stale, err := suite.repository.GetActiveOlderThan(ctx, time.Now().UTC().Add(time.Minute))
	suite.Require().NoError(err)
	suite.Len(stale, 1)

	stale, err = suite.repository.GetActiveOlderThan(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Empty(stale)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestCloseActive_ClosesSession() {
	ctx := context.Background()
	testSession := suite.createTestSession("T3")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testSession))

	suite.Require().NoError(testSession.Close())
	suite.Require().NoError(suite.repository.CloseActive(ctx, testSession))

	loaded, err := suite.repository.Get(ctx, testSession.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
	suite.NotNil(loaded.ClosedAt())
}

func (suite *SessionRepositoryIntegrationTestSuite) TestCloseActive_AlreadyClosedRow_ReturnsInvalidState() {
	ctx := context.Background()
	testSession := suite.createTestSession("T3")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testSession))

	// Two staff members read the session while it is still active.
	winner, err := suite.repository.Get(ctx, testSession.ID())
	suite.Require().NoError(err)
	loser, err := suite.repository.Get(ctx, testSession.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(winner.Close())
	suite.Require().NoError(suite.repository.CloseActive(ctx, winner))

	// The stored row is no longer active, so the second close must fail
	// instead of rewriting closed_at.
	suite.Require().NoError(loser.Close())
	err = suite.repository.CloseActive(ctx, loser)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrInvalidState)

	loaded, err := suite.repository.Get(ctx, testSession.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
	suite.Require().NotNil(loaded.ClosedAt())
	suite.WithinDuration(*winner.ClosedAt(), *loaded.ClosedAt(), time.Second)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestGetByToken() {
	ctx := context.Background()
	testSession := suite.createTestSession("T4")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testSession))

	loaded, err := suite.repository.GetByToken(ctx, testSession.Token())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testSession))

	_, err = suite.repository.GetByToken(ctx, kernel.NewSessionToken())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByToken(ctx, "")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func TestSessionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SessionRepositoryIntegrationTestSuite))
}
