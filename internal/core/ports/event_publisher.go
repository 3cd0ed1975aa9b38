package ports

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
)

// EventPublisher broadcasts order lifecycle events to connected observers
// (the kitchen dashboard, primarily). Publishing is best effort and must
// never block or fail a committed business operation: implementations
// deliver to whoever is listening right now and drop the rest.
type EventPublisher interface {
	// PublishNewOrder announces a freshly placed order. The session token
	// is the public id of the session the order joined.
	PublishNewOrder(aggregate *order.Order, sessionToken string)

	// PublishOrderStatusChanged announces a kitchen status change.
	PublishOrderStatusChanged(orderID kernel.UUID, status order.Status)
}
