// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// An order row owns its item rows; loading an order always preloads them.
// The order number carries a unique index so a generated collision surfaces
// as a duplicate key error.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number              string    `gorm:"uniqueIndex"`
	SessionID           uuid.UUID `gorm:"type:uuid;index"`
	CustomerID          uuid.UUID `gorm:"type:uuid;index"`
	TableNumber         string
	Status              string          `gorm:"index"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(10,2)"`
	PaymentMethod       string
	PaymentStatus       string
	SpecialInstructions string
	Items               []ItemDTO `gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one priced order line. Lines are immutable after
// placement; updates never touch them.
type ItemDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID          uuid.UUID `gorm:"type:uuid"`
	Quantity            int
	UnitPrice           decimal.Decimal `gorm:"type:numeric(10,2)"`
	Subtotal            decimal.Decimal `gorm:"type:numeric(10,2)"`
	SpecialInstructions string
	CreatedAt           time.Time
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ID:                  item.ID().Bytes(),
			OrderID:             aggregate.ID().Bytes(),
			MenuItemID:          item.MenuItemID().Bytes(),
			Quantity:            item.Quantity(),
			UnitPrice:           item.UnitPrice().Decimal(),
			Subtotal:            item.Subtotal().Decimal(),
			SpecialInstructions: item.SpecialInstructions(),
			CreatedAt:           item.CreatedAt(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Number:              aggregate.Number(),
		SessionID:           aggregate.SessionID().Bytes(),
		CustomerID:          aggregate.CustomerID().Bytes(),
		TableNumber:         aggregate.TableNumber(),
		Status:              aggregate.Status().String(),
		TotalPrice:          aggregate.TotalPrice().Decimal(),
		PaymentMethod:       aggregate.PaymentMethod().String(),
		PaymentStatus:       aggregate.PaymentStatus().String(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		Items:               itemDTOs,
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sessionID, err := kernel.UUIDFromBytes(dto.SessionID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.Number, sessionID, customerID, dto.TableNumber,
		items, status, totalPrice, paymentMethod, paymentStatus,
		dto.SpecialInstructions, dto.CreatedAt, dto.UpdatedAt,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, menuItemID, dto.Quantity, unitPrice, subtotal, dto.SpecialInstructions, dto.CreatedAt)
}
