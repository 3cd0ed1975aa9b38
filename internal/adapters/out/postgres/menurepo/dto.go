// Package menurepo provides read access to the menu catalog. The catalog is
// seeded out of band; this service only prices orders against it.
package menurepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemDTO represents the database structure for menu catalog entries.
type MenuItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	Category    string          `gorm:"index"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)"`
	IsAvailable bool
}

// TableName specifies the database table name for menu entities.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// toDomain converts a database DTO to a menu item entity.
func toDomain(dto MenuItemDTO) (*menu.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return menu.RestoreMenuItem(id, dto.Name, dto.Description, dto.Category, price, dto.IsAvailable)
}
