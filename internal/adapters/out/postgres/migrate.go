package postgres

import (
	"tableside/internal/adapters/out/postgres/customerrepo"
	"tableside/internal/adapters/out/postgres/menurepo"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/adapters/out/postgres/sessionrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the database schema for all persisted
// entities. GORM tags cannot express a partial unique index, so the rule
// that a table has at most one active session is applied with raw SQL
// after AutoMigrate.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&sessionrepo.SessionDTO{},
		&customerrepo.CustomerDTO{},
		&menurepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
	); err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_dining_sessions_one_active_per_table
		ON dining_sessions (table_number)
		WHERE status = 'ACTIVE'
	`).Error
}
