package commands

import (
	"context"

	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/core/domain/services"
	"tableside/internal/pkg/errs"
)

// FinishSessionResult carries the closed session and its settled bill.
type FinishSessionResult struct {
	Session *session.Session
	Bill    services.Bill
}

// FinishSessionCommandHandler closes a dining session and settles its bill.
//
// Finishing is a single transaction: the session must be active and must
// have at least one order; every non-terminal order is moved to the
// configured close status (served or paid), the bill is totalled, and
// the session is closed. Closing is irreversible.
//
// Example:
//
//	handler := NewFinishSessionCommandHandler(uowFactory, calculator, order.Paid)
//	cmd, _ := NewFinishSessionCommand(sessionToken)
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidState) {
//	    // Session already closed, or has no orders to bill
//	}
type FinishSessionCommandHandler struct {
	uowFactory  SessionOrderUoWFactory
	calculator  services.BillCalculator
	closeStatus order.Status
}

// NewFinishSessionCommandHandler creates a handler for session finishing.
// closeStatus is the terminal status applied to the session's open orders,
// typically order.Paid.
func NewFinishSessionCommandHandler(
	uowFactory SessionOrderUoWFactory,
	calculator services.BillCalculator,
	closeStatus order.Status,
) (FinishSessionCommandHandler, error) {
	if closeStatus != order.Served && closeStatus != order.Paid {
		return FinishSessionCommandHandler{}, errs.NewValueIsInvalidError(
			"close status must be served or paid")
	}

	return FinishSessionCommandHandler{
		uowFactory:  uowFactory,
		calculator:  calculator,
		closeStatus: closeStatus,
	}, nil
}

// Handle processes the finish command and returns the closed session with
// its bill.
func (h *FinishSessionCommandHandler) Handle(ctx context.Context, cmd FinishSessionCommand) (*FinishSessionResult, error) {
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

	sessionRepo := uow.SessionRepository()
	diningSession, err := sessionRepo.GetByToken(ctx, cmd.SessionToken())
	if err != nil {
		return nil, err
	}
	if !diningSession.IsActive() {
		return nil, errs.NewInvalidStateError("session is already closed")
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAllBySession(ctx, diningSession.ID())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NewInvalidStateError("session has no orders")
	}

	for _, o := range orders {
		if o.Status().IsTerminal() || o.Status() == h.closeStatus {
			continue
		}

		if err = o.ChangeStatus(h.closeStatus); err != nil {
			return nil, err
		}
		if h.closeStatus == order.Paid {
			o.MarkPaid()
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	bill, err := h.calculator.Calculate(orders)
	if err != nil {
		return nil, err
	}

	if err = diningSession.Close(); err != nil {
		return nil, err
	}
	// CloseActive only matches the row while it is still active, so a
	// concurrent finish that committed between our read and this write
	// surfaces here as InvalidState instead of a second silent close.
	if err = sessionRepo.CloseActive(ctx, diningSession); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return &FinishSessionResult{Session: diningSession, Bill: bill}, nil
}
