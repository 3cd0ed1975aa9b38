package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored with their line items; loading an order always loads
// its items. Storage enforces order number uniqueness and Add surfaces a
// collision as a uniqueness conflict so the caller can regenerate.
type OrderRepository interface {
	// Add persists a new order aggregate with its items to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Items are immutable and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllBySession retrieves all orders in a session ordered by
	// creation time ascending.
	GetAllBySession(ctx context.Context, sessionID kernel.UUID) ([]*order.Order, error)

	// CountBySession returns the number of orders in a session.
	// Used to enforce that sessions with no orders cannot be finished.
	CountBySession(ctx context.Context, sessionID kernel.UUID) (int64, error)
}
