package queries

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetKitchenOrdersQueryHandler retrieves the kitchen order queue from the
// database. Orders come back with their lines so the display needs no
// further lookups.
type GetKitchenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetKitchenOrdersQueryHandler creates a handler for kitchen queue queries.
func NewGetKitchenOrdersQueryHandler(db *gorm.DB) GetKitchenOrdersQueryHandler {
	return GetKitchenOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns orders sorted by placement time,
// oldest first.
func (h GetKitchenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetKitchenOrdersQuery,
) ([]GetKitchenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0)
	if filter := query.StatusFilter(); filter != nil {
		statuses = append(statuses, filter.String())
	} else {
		for _, status := range order.ActiveStatuses() {
			statuses = append(statuses, status.String())
		}
	}

	orders := make([]GetKitchenOrdersQueryResponse, 0)
	orderIDs := make([]uuid.UUID, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			table_number,
			status,
			special_instructions,
			created_at
		FROM orders
		WHERE status IN ?
		ORDER BY created_at
	`, statuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetKitchenOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&orderResp.Number,
			&orderResp.TableNumber,
			&orderResp.Status,
			&orderResp.SpecialInstructions,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.Items = make([]GetKitchenOrdersQueryItemResponse, 0)
		orders = append(orders, orderResp)
		orderIDs = append(orderIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err = h.attachItems(ctx, orders, orderIDs); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the lines for every listed order in one round trip and
// distributes them onto the responses.
func (h GetKitchenOrdersQueryHandler) attachItems(
	ctx context.Context,
	orders []GetKitchenOrdersQueryResponse,
	orderIDs []uuid.UUID,
) error {
	indexByOrderID := make(map[uuid.UUID]int, len(orders))
	for i, id := range orderIDs {
		indexByOrderID[id] = i
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			oi.order_id,
			m.name,
			oi.quantity,
			oi.special_instructions
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id IN ?
		ORDER BY oi.created_at
	`, orderIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetKitchenOrdersQueryItemResponse
		var orderID uuid.UUID

		err = rows.Scan(
			&orderID,
			&item.MenuItemName,
			&item.Quantity,
			&item.SpecialInstructions,
		)
		if err != nil {
			return err
		}

		if i, ok := indexByOrderID[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return rows.Err()
}
