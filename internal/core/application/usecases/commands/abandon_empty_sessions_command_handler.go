package commands

import (
	"context"
	"errors"
	"time"

	"tableside/internal/pkg/errs"
)

// AbandonEmptySessionsCommandHandler closes active sessions that never
// received an order. Guests sometimes trigger a session (a table QR scan)
// and walk away; without housekeeping the table stays locked forever
// because finishing requires at least one order.
//
// Sessions with orders are never touched, regardless of age.
type AbandonEmptySessionsCommandHandler struct {
	uowFactory SessionOrderUoWFactory
}

// NewAbandonEmptySessionsCommandHandler creates a handler for session
// abandonment. Requires a SessionOrderUoWFactory for transactional
// persistence.
func NewAbandonEmptySessionsCommandHandler(uowFactory SessionOrderUoWFactory) AbandonEmptySessionsCommandHandler {
	return AbandonEmptySessionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle closes every active session older than the command's threshold
// that has no orders. Returns the number of sessions closed.
func (h *AbandonEmptySessionsCommandHandler) Handle(ctx context.Context, cmd AbandonEmptySessionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	orderRepo := uow.OrderRepository()

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())
	stale, err := sessionRepo.GetActiveOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, diningSession := range stale {
		count, err := orderRepo.CountBySession(ctx, diningSession.ID())
		if err != nil {
			return 0, err
		}
		if count > 0 {
			continue
		}

		if err = diningSession.Close(); err != nil {
			return 0, err
		}
		if err = sessionRepo.CloseActive(ctx, diningSession); err != nil {
			// An overlapping sweep or finish already closed it.
			if errors.Is(err, errs.ErrInvalidState) {
				continue
			}
			return 0, err
		}
		closed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return closed, nil
}
