package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetKitchenOrdersQueryIsNotConstructed = errors.New(
		"GetKitchenOrdersQuery must be created via NewGetKitchenOrdersQuery constructor",
	)
)

// GetKitchenOrdersQuery retrieves the kitchen's working set of orders.
// Without a filter it returns every order still in the kitchen pipeline
// (pending through ready); with a filter it returns orders in exactly that
// status. Results come back oldest first so the kitchen works the queue in
// placement order.
type GetKitchenOrdersQuery struct {
	statusFilter *order.Status
	guard        guard.ConstructorGuard
}

// NewGetKitchenOrdersQuery creates a query for the kitchen order queue.
// An empty status string means no filter; anything else must be a valid
// order status.
func NewGetKitchenOrdersQuery(status string) (GetKitchenOrdersQuery, error) {
	query := GetKitchenOrdersQuery{guard: guard.NewConstructorGuard()}

	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return GetKitchenOrdersQuery{}, err
		}
		query.statusFilter = &parsed
	}

	return query, nil
}

// StatusFilter returns the requested status filter, or nil when the query
// covers the whole kitchen pipeline.
func (q GetKitchenOrdersQuery) StatusFilter() *order.Status {
	return q.statusFilter
}

// Validate ensures the query was created through the constructor.
func (q GetKitchenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenOrdersQueryIsNotConstructed)
}

// GetKitchenOrdersQueryResponse is one order on the kitchen display.
type GetKitchenOrdersQueryResponse struct {
	ID                  kernel.UUID
	Number              string
	TableNumber         string
	Status              string
	SpecialInstructions string
	Items               []GetKitchenOrdersQueryItemResponse
	CreatedAt           time.Time
}

// GetKitchenOrdersQueryItemResponse is one line the kitchen has to prepare.
type GetKitchenOrdersQueryItemResponse struct {
	MenuItemName        string
	Quantity            int
	SpecialInstructions string
}
