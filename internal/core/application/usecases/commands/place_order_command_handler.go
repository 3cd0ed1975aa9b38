package commands

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/customer"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"
)

// placeOrderMaxAttempts bounds retries when a generated order number or a
// concurrently opened session collides with an existing row.
const placeOrderMaxAttempts = 3

// PlaceOrderResult carries the persisted order together with the public
// token of the session it joined. Callers echo the token back to attach
// further orders to the same session.
type PlaceOrderResult struct {
	Order        *order.Order
	SessionToken string
}

// PlaceOrderCommandHandler handles the business logic for order placement.
//
// A placement is a single transaction that upserts the customer by phone,
// resolves or opens the table's active session, prices the requested lines
// against the menu and persists the order. Uniqueness conflicts (a
// concurrent session for the same table, an order number collision) abort
// the transaction and the whole placement is retried with fresh state, a
// bounded number of times.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewPlaceOrderCommand("T5", "Asha", "+919900112233", "",
//	    items, order.PaymentMethodUPI, "", "")
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// result.Order is persisted and announced to kitchen dashboards
type PlaceOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires a PlaceOrderUoWFactory for transactional persistence and an
// EventPublisher for announcing placed orders.
func NewPlaceOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	publisher ports.EventPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the placement command and returns the persisted order.
// The event announcing the order is published only after the transaction
// commits; publishing is best effort and cannot fail the placement.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		result *PlaceOrderResult
		err    error
	)

	for attempt := 0; attempt < placeOrderMaxAttempts; attempt++ {
		result, err = h.place(ctx, cmd)
		if err == nil {
			break
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	h.publisher.PublishNewOrder(result.Order, result.SessionToken)
	return result, nil
}

// place runs one placement attempt in its own transaction.
func (h *PlaceOrderCommandHandler) place(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	guest, err := h.upsertCustomer(ctx, uow.CustomerRepository(), cmd)
	if err != nil {
		return nil, err
	}

	diningSession, err := h.resolveSession(ctx, uow.SessionRepository(), cmd, guest.ID())
	if err != nil {
		return nil, err
	}

	items, err := h.priceItems(ctx, uow.MenuReader(), cmd.Items())
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewOrderNumber(),
		diningSession.ID(),
		guest.ID(),
		cmd.TableNumber(),
		items,
		cmd.PaymentMethod(),
		cmd.SpecialInstructions(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return &PlaceOrderResult{Order: placed, SessionToken: diningSession.Token()}, nil
}

// upsertCustomer finds the customer by phone or creates them, refreshing
// name and email on repeat visits.
func (h *PlaceOrderCommandHandler) upsertCustomer(
	ctx context.Context,
	customerRepo ports.CustomerRepository,
	cmd PlaceOrderCommand,
) (*customer.Customer, error) {
	guest, err := customerRepo.GetByPhone(ctx, cmd.CustomerPhone())
	if err == nil {
		if err = guest.Refresh(cmd.CustomerName(), cmd.CustomerEmail()); err != nil {
			return nil, err
		}
		if err = customerRepo.Update(ctx, guest); err != nil {
			return nil, err
		}
		return guest, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	guest, err = customer.NewCustomer(kernel.NewUUID(), cmd.CustomerName(), cmd.CustomerPhone(), cmd.CustomerEmail())
	if err != nil {
		return nil, err
	}
	if err = customerRepo.Add(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// resolveSession returns the session the order joins. A caller-supplied
// token pins the order to that exact session and must name one that is
// still active; without a token the table's active session is used,
// opening one when the table is free. A losing race against a concurrent
// open surfaces as a uniqueness conflict from Add and is retried by the
// caller.
func (h *PlaceOrderCommandHandler) resolveSession(
	ctx context.Context,
	sessionRepo ports.SessionRepository,
	cmd PlaceOrderCommand,
	customerID kernel.UUID,
) (*session.Session, error) {
	if token := cmd.SessionToken(); token != "" {
		diningSession, err := sessionRepo.GetByToken(ctx, token)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return nil, errs.NewInvalidStateError("session is unknown or closed")
			}
			return nil, err
		}
		if !diningSession.IsActive() {
			return nil, errs.NewInvalidStateError("session is unknown or closed")
		}
		return diningSession, nil
	}

	diningSession, err := sessionRepo.GetActiveByTable(ctx, cmd.TableNumber())
	if err == nil {
		return diningSession, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	diningSession, err = session.NewSession(kernel.NewUUID(), kernel.NewSessionToken(), cmd.TableNumber(), &customerID)
	if err != nil {
		return nil, err
	}
	if err = sessionRepo.Add(ctx, diningSession); err != nil {
		return nil, err
	}
	return diningSession, nil
}

// priceItems turns requested lines into priced order items, snapshotting
// the current catalog price. Unknown or unavailable dishes fail the whole
// placement.
func (h *PlaceOrderCommandHandler) priceItems(
	ctx context.Context,
	menuReader ports.MenuReader,
	requested []PlaceOrderItem,
) ([]*order.Item, error) {
	ids := make([]kernel.UUID, 0, len(requested))
	for _, line := range requested {
		ids = append(ids, line.MenuItemID)
	}

	catalog, err := menuReader.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(requested))
	for _, line := range requested {
		dish, ok := catalog[line.MenuItemID]
		if !ok || !dish.IsAvailable() {
			return nil, errs.NewObjectNotFoundError("menu_item_id", line.MenuItemID)
		}

		item, err := order.NewItem(kernel.NewUUID(), dish.ID(), line.Quantity, dish.Price(), line.SpecialInstructions)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
