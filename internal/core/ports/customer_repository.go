package ports

import (
	"context"

	"tableside/internal/core/domain/model/customer"
	"tableside/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
// Phone number is unique in storage.
type CustomerRepository interface {
	// Add persists a new customer to storage.
	Add(ctx context.Context, entity *customer.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, entity *customer.Customer) error

	// Get retrieves a customer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByPhone retrieves a customer by phone number.
	// Returns errs.ObjectNotFoundError when the phone is unknown.
	GetByPhone(ctx context.Context, phone string) (*customer.Customer, error)
}
