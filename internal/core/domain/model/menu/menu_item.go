package menu

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrMenuItemIsNotConstructed is returned when menu item was not created through a constructor.
var ErrMenuItemIsNotConstructed = errors.New("menu item is not constructed")

// MenuItem is a catalog entry orders are priced against.
type MenuItem struct {
	id          kernel.UUID
	name        string
	description string
	category    string
	price       kernel.Money
	isAvailable bool

	isConstructed bool
}

// RestoreMenuItem reconstructs a MenuItem from persistence. There is no
// NewMenuItem: the catalog is seeded out of band and this service only
// reads it.
func RestoreMenuItem(
	id kernel.UUID,
	name string,
	description string,
	category string,
	price kernel.Money,
	isAvailable bool,
) (*MenuItem, error) {
	item := &MenuItem{
		description:   description,
		category:      category,
		price:         price,
		isAvailable:   isAvailable,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the MenuItem instance was properly constructed through a
// factory method.
func (m *MenuItem) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}

	return nil
}

// ID returns the menu item's unique identifier.
func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

// Name returns the dish name.
func (m *MenuItem) Name() string {
	return m.name
}

// Description returns the dish description, possibly empty.
func (m *MenuItem) Description() string {
	return m.description
}

// Category returns the menu section the dish belongs to.
func (m *MenuItem) Category() string {
	return m.category
}

// Price returns the current catalog price.
func (m *MenuItem) Price() kernel.Money {
	return m.price
}

// IsAvailable reports whether the dish can be ordered right now.
func (m *MenuItem) IsAvailable() bool {
	return m.isAvailable
}

func (m *MenuItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *MenuItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("menu_item_name")
	}
	m.name = name
	return nil
}
