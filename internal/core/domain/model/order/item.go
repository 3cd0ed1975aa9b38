package order

import (
	"errors"
	"fmt"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem or RestoreItem factory methods.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")
)

// Item is one line of an order: a menu item reference, an ordered quantity,
// and the price snapshot taken from the catalog at placement time.
//
// Items are immutable once created. Subtotal always equals the unit price
// multiplied by the quantity; the catalog is never consulted again after
// the snapshot is taken.
type Item struct {
	// id is the unique identifier for the line item
	id kernel.UUID

	// menuItemID references the catalog entry the price was snapshotted from
	menuItemID kernel.UUID

	// quantity is the ordered count, always positive
	quantity int

	// unitPrice is the catalog price at placement time
	unitPrice kernel.Money

	// subtotal is unitPrice * quantity, fixed at creation
	subtotal kernel.Money

	// specialInstructions is optional free text for the kitchen
	specialInstructions string

	// createdAt is when the line was placed
	createdAt time.Time

	// isConstructed ensures the item was created via a factory method
	isConstructed bool
}

// NewItem creates a line item with a freshly computed subtotal.
//
// Parameters:
//   - id: unique identifier for the line (must be valid UUID)
//   - menuItemID: catalog entry being ordered (must be valid UUID)
//   - quantity: ordered count (must be a positive integer)
//   - unitPrice: the catalog price snapshot
//   - specialInstructions: optional kitchen note
func NewItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	specialInstructions string,
) (*Item, error) {
	item := &Item{
		specialInstructions: specialInstructions,
		createdAt:           time.Now().UTC(),
		isConstructed:       true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	item.unitPrice = unitPrice
	item.subtotal = unitPrice.MulInt(quantity)
	return item, nil
}

// RestoreItem reconstructs a line item from persistence, keeping the stored
// subtotal rather than recomputing it.
func RestoreItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	subtotal kernel.Money,
	specialInstructions string,
	createdAt time.Time,
) (*Item, error) {
	item := &Item{
		specialInstructions: specialInstructions,
		createdAt:           createdAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	item.unitPrice = unitPrice
	item.subtotal = subtotal
	return item, nil
}

// Validate ensures the Item instance was properly constructed through a
// factory method. Returns ErrItemIsNotConstructed otherwise.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// MenuItemID returns the catalog entry the price snapshot was taken from.
func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the ordered count.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the catalog price at placement time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unitPrice * quantity as fixed at creation.
func (i *Item) Subtotal() kernel.Money {
	return i.subtotal
}

// SpecialInstructions returns the optional kitchen note.
func (i *Item) SpecialInstructions() string {
	return i.specialInstructions
}

// CreatedAt returns when the line was placed.
func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
