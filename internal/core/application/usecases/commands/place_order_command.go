package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrTableNumberIsRequired  = errors.New("table number is required")
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrPhoneIsRequired        = errors.New("customer phone is required")
	ErrItemsAreRequired       = errors.New("at least one item is required")
	ErrQuantityIsInvalid      = errors.New("item quantity must be greater than 0")
)

// PlaceOrderItem is one requested line of a placement: which dish and how
// many. Prices are not accepted from the caller; they come from the menu.
type PlaceOrderItem struct {
	MenuItemID          kernel.UUID
	Quantity            int
	SpecialInstructions string
}

// PlaceOrderCommand represents a request to place an order for a table.
// Carries the customer's contact details, the requested lines and the
// intended payment method. When the caller already holds a session token
// from an earlier order the command carries it; otherwise the handler
// resolves the table's session itself.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand("T5", "Asha", "+919900112233", "",
//	    []PlaceOrderItem{{MenuItemID: dishID, Quantity: 2}},
//	    order.PaymentMethodUPI, "", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	tableNumber         string
	customerName        string
	customerPhone       string
	customerEmail       string
	items               []PlaceOrderItem
	paymentMethod       order.PaymentMethod
	specialInstructions string
	sessionToken        string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order. Validates that
// the table, customer name and phone are present, that at least one line
// was requested and that every line has a valid dish id and a positive
// quantity. sessionToken is optional; when empty the order joins (or
// opens) the table's active session. Returns an error if any validation
// fails.
func NewPlaceOrderCommand(
	tableNumber string,
	customerName string,
	customerPhone string,
	customerEmail string,
	items []PlaceOrderItem,
	paymentMethod order.PaymentMethod,
	specialInstructions string,
	sessionToken string,
) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		customerEmail:       customerEmail,
		specialInstructions: specialInstructions,
		sessionToken:        sessionToken,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setTableNumber(tableNumber),
		placeCommand.setCustomerName(customerName),
		placeCommand.setCustomerPhone(customerPhone),
		placeCommand.setItems(items),
		placeCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// TableNumber returns the table the order is for.
func (c PlaceOrderCommand) TableNumber() string {
	return c.tableNumber
}

// CustomerName returns the customer's display name.
func (c PlaceOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's phone, the upsert key.
func (c PlaceOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// CustomerEmail returns the customer's email, possibly empty.
func (c PlaceOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Items returns the requested lines.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	items := make([]PlaceOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

// PaymentMethod returns how the customer intends to pay.
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// SpecialInstructions returns the optional order-level note.
func (c PlaceOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

// SessionToken returns the caller-supplied session token, empty when the
// order should be routed by table number instead.
func (c PlaceOrderCommand) SessionToken() string {
	return c.sessionToken
}

func (c *PlaceOrderCommand) setTableNumber(tableNumber string) error {
	if tableNumber == "" {
		return ErrTableNumberIsRequired
	}

	c.tableNumber = tableNumber
	return nil
}

func (c *PlaceOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *PlaceOrderCommand) setCustomerPhone(customerPhone string) error {
	if customerPhone == "" {
		return ErrPhoneIsRequired
	}

	c.customerPhone = customerPhone
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
	}

	c.items = make([]PlaceOrderItem, len(items))
	copy(c.items, items)
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}
