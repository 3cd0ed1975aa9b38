package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler loads the order read model straight from the database,
// bypassing the domain aggregate. The customer and session rows are joined
// in so that the response can show who placed the order and which session
// token it belongs to; menu item names are resolved per line against the
// catalog.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError if no order with the
// given identifier exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			s.token,
			o.table_number,
			o.status,
			c.name,
			c.phone,
			o.total_price,
			o.payment_method,
			o.payment_status,
			o.special_instructions,
			o.created_at,
			o.updated_at
		FROM orders o
		JOIN dining_sessions s ON s.id = o.session_id
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var id uuid.UUID
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&id,
		&response.Number,
		&response.SessionToken,
		&response.TableNumber,
		&response.Status,
		&response.CustomerName,
		&response.CustomerPhone,
		&response.TotalPrice,
		&response.PaymentMethod,
		&response.PaymentStatus,
		&response.SpecialInstructions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID
	response.CreatedAt = createdAt
	response.UpdatedAt = updatedAt

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderQueryItemResponse, error) {
	items := make([]GetOrderQueryItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			oi.menu_item_id,
			m.name,
			oi.quantity,
			oi.unit_price,
			oi.subtotal,
			oi.special_instructions
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ?
		ORDER BY oi.created_at
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderQueryItemResponse
		var menuItemID uuid.UUID

		err = rows.Scan(
			&menuItemID,
			&item.MenuItemName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
			&item.SpecialInstructions,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.MenuItemID = id
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
