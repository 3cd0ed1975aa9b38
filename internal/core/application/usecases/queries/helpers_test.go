package queries_test

import (
	"context"
	"time"

	"tableside/internal/adapters/out/postgres"
	"tableside/internal/adapters/out/postgres/menurepo"
	"tableside/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for wiring repositories directly
// in tests, outside a unit of work.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// startPostgres boots a disposable postgres container and returns an open
// connection with the schema migrated.
func startPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, *gorm.DB, error) {
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
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		return nil, nil, err
	}

	return container, db, nil
}

// seedMenuItem inserts one catalog row and returns its identifier.
func seedMenuItem(db *gorm.DB, name, price string) (kernel.UUID, error) {
	id := kernel.NewUUID()
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return kernel.UUID{}, err
	}

	dto := menurepo.MenuItemDTO{
		ID:          id.Bytes(),
		Name:        name,
		Category:    "mains",
		Price:       amount,
		IsAvailable: true,
	}
	return id, db.Create(&dto).Error
}
