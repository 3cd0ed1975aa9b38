package customer

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when customer was not created through a constructor.
var ErrCustomerIsNotConstructed = errors.New("customer is not constructed")

// Customer is the guest placing orders. Phone is the natural key used for
// lookup; name is required and email is optional.
type Customer struct {
	id    kernel.UUID
	name  string
	phone string
	email string

	createdAt time.Time

	// isConstructed ensures the customer was created via a factory method
	isConstructed bool
}

// NewCustomer creates a Customer for a phone number seen for the first time.
func NewCustomer(id kernel.UUID, name string, phone string, email string) (*Customer, error) {
	c := &Customer{
		email:         email,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer reconstructs a Customer from persistence.
func RestoreCustomer(id kernel.UUID, name string, phone string, email string, createdAt time.Time) (*Customer, error) {
	c := &Customer{
		email:         email,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Customer instance was properly constructed through a
// factory method.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}

	return nil
}

// IsEqual compares two customers by their unique identifiers.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Phone returns the customer's phone number, the natural lookup key.
func (c *Customer) Phone() string {
	return c.phone
}

// Email returns the customer's email, possibly empty.
func (c *Customer) Email() string {
	return c.email
}

// CreatedAt returns when the customer was first seen.
func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

// Refresh updates the customer's name and email from a later order. Empty
// inputs keep the stored values: a repeat order that omits the email must
// not erase the one on file.
func (c *Customer) Refresh(name string, email string) error {
	if name != "" {
		if err := c.setName(name); err != nil {
			return err
		}
	}
	if email != "" {
		c.email = email
	}
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer_name")
	}
	c.name = name
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("customer_phone")
	}
	c.phone = phone
	return nil
}
