package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its priced lines and the
// customer it was placed by. Used by diners polling their order status.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	response, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse carries the full read model of one order.
// SessionToken is the public token of the dining session the order belongs
// to, usable with the session and invoice endpoints.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	Number              string
	SessionToken        string
	TableNumber         string
	Status              string
	CustomerName        string
	CustomerPhone       string
	TotalPrice          float64
	PaymentMethod       string
	PaymentStatus       string
	SpecialInstructions string
	Items               []GetOrderQueryItemResponse
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// GetOrderQueryItemResponse is one priced line of the order read model.
// MenuItemName is resolved against the current catalog; the prices are the
// snapshot taken at placement time.
type GetOrderQueryItemResponse struct {
	MenuItemID          kernel.UUID
	MenuItemName        string
	Quantity            int
	UnitPrice           float64
	Subtotal            float64
	SpecialInstructions string
}
