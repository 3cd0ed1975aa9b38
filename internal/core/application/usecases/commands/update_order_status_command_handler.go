package commands

import (
	"context"

	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles kitchen status changes.
//
// The transition rules live on the Order aggregate: illegal moves (out of
// a terminal state, or out of served to anything but paid) fail there and
// nothing is persisted. Moving to paid also settles the payment record.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, publisher)
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, order.Ready)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidState) {
//	    // Transition not allowed from the order's current status
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for announcing the change.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status update command and returns the updated
// order. The change event is published only after the transaction
// commits; publishing is best effort.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	updated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = updated.ChangeStatus(cmd.Status()); err != nil {
		return nil, err
	}
	if cmd.Status() == order.Paid {
		updated.MarkPaid()
	}

	if err = orderRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.PublishOrderStatusChanged(updated.ID(), updated.Status())
	return updated, nil
}
