package order

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a placed order in the system. It is the aggregate root
// that owns its line items and manages the kitchen status lifecycle.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, order number, session, customer
//     and table number
//   - Must contain at least one line item
//   - TotalPrice always equals the sum of line item subtotals at the moment
//     of creation; status changes never alter price fields
//   - The table number is a denormalized copy, immutable after creation
//   - Status transitions follow the rules in Status.TransitionTo
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the internal unique identifier for the order
	id kernel.UUID

	// number is the globally unique human-readable order number
	number string

	// sessionID references the dining session this order belongs to
	sessionID kernel.UUID

	// customerID references the ordering customer
	customerID kernel.UUID

	// tableNumber is a denormalized copy of the session's table
	tableNumber string

	// status is the current state on the kitchen board
	status Status

	// items are the immutable priced lines, at least one
	items []*Item

	// totalPrice is the sum of line subtotals, fixed at creation
	totalPrice kernel.Money

	// paymentMethod is how the customer intends to pay
	paymentMethod PaymentMethod

	// paymentStatus tracks settlement
	paymentStatus PaymentStatus

	// specialInstructions is optional order-level free text
	specialInstructions string

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an Order in Pending status from priced line items.
// This is the only way (besides RestoreOrder) to obtain a valid Order,
// ensuring all business invariants hold.
//
// The order total is computed here as the exact sum of the item subtotals
// and never recomputed afterwards. Payment status starts as pending.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), menuItemID, 2, price, "")
//	o, err := order.NewOrder(
//	    kernel.NewUUID(), kernel.NewOrderNumber(),
//	    sessionID, customerID, "T5",
//	    []*order.Item{item}, order.PaymentMethodUPI, "",
//	)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	number string,
	sessionID kernel.UUID,
	customerID kernel.UUID,
	tableNumber string,
	items []*Item,
	paymentMethod PaymentMethod,
	specialInstructions string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:              Pending,
		paymentStatus:       PaymentStatusPending,
		specialInstructions: specialInstructions,
		createdAt:           now,
		updatedAt:           now,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setSessionID(sessionID),
		o.setCustomerID(customerID),
		o.setTableNumber(tableNumber),
		o.setItems(items),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.totalPrice = total

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Status, payment
// fields, total and timestamps are taken as stored; the same structural
// validation as NewOrder applies.
func RestoreOrder(
	id kernel.UUID,
	number string,
	sessionID kernel.UUID,
	customerID kernel.UUID,
	tableNumber string,
	items []*Item,
	status Status,
	totalPrice kernel.Money,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	specialInstructions string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		specialInstructions: specialInstructions,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setSessionID(sessionID),
		o.setCustomerID(customerID),
		o.setTableNumber(tableNumber),
		o.setItems(items),
		o.setStatus(status),
		o.setPaymentMethod(paymentMethod),
		o.setPaymentStatus(paymentStatus),
	); err != nil {
		return nil, err
	}

	o.totalPrice = totalPrice
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct and should be called when reconstructing orders
// from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// SessionID returns the dining session this order belongs to.
func (o *Order) SessionID() kernel.UUID {
	return o.sessionID
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// TableNumber returns the denormalized table number.
func (o *Order) TableNumber() string {
	return o.tableNumber
}

// Status returns the current kitchen status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's line items. The returned slice is a copy;
// the items themselves are immutable.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalPrice returns the sum of line subtotals as fixed at creation.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// PaymentMethod returns how the customer intends to pay.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the settlement state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// SpecialInstructions returns the optional order-level note.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last modified.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to the target status.
//
// The transition rules live in Status.TransitionTo: unknown targets are
// rejected before any mutation, terminal states admit nothing, and Served
// admits only Paid. On success updatedAt is refreshed; price fields are
// never touched.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// MarkPaid records settlement of the order: payment status becomes paid.
// Used by session finishing when the configured terminal status is Paid.
func (o *Order) MarkPaid() {
	o.paymentStatus = PaymentStatusPaid
	o.updatedAt = time.Now().UTC()
}

// Renumber replaces the order number before the first successful persist.
// Used only by the placement retry loop when the generated number collides
// with an existing one.
func (o *Order) Renumber(number string) error {
	return o.setNumber(number)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	o.number = number
	return nil
}

func (o *Order) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}
	o.sessionID = sessionID
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setTableNumber(tableNumber string) error {
	if tableNumber == "" {
		return errs.NewValueIsRequiredError("table_number")
	}
	o.tableNumber = tableNumber
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}
