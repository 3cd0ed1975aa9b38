package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSessionQueryHandler loads the session read model from the database.
type GetSessionQueryHandler struct {
	db *gorm.DB
}

// NewGetSessionQueryHandler creates a handler for session queries.
func NewGetSessionQueryHandler(db *gorm.DB) GetSessionQueryHandler {
	return GetSessionQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError if no session with
// the given token exists. A session with no orders yet returns an empty
// order list, not an error.
func (h GetSessionQueryHandler) Handle(
	ctx context.Context,
	query GetSessionQuery,
) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	var response GetSessionQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			token,
			table_number,
			status,
			created_at,
			closed_at
		FROM dining_sessions
		WHERE token = ?
	`, query.SessionToken()).Row()

	var id uuid.UUID
	var createdAt time.Time
	var closedAt sql.NullTime
	err := row.Scan(
		&id,
		&response.Token,
		&response.TableNumber,
		&response.Status,
		&createdAt,
		&closedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetSessionQueryResponse{}, errs.NewObjectNotFoundError("session_id", query.SessionToken())
		}
		return GetSessionQueryResponse{}, err
	}

	sessionID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetSessionQueryResponse{}, err
	}
	response.ID = sessionID
	response.CreatedAt = createdAt
	if closedAt.Valid {
		response.ClosedAt = &closedAt.Time
	}

	orders, err := h.loadOrders(ctx, sessionID)
	if err != nil {
		return GetSessionQueryResponse{}, err
	}
	response.Orders = orders

	return response, nil
}

func (h GetSessionQueryHandler) loadOrders(
	ctx context.Context,
	sessionID kernel.UUID,
) ([]GetSessionQueryOrderResponse, error) {
	orders := make([]GetSessionQueryOrderResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			total_price,
			payment_status,
			created_at
		FROM orders
		WHERE session_id = ?
		ORDER BY created_at
	`, sessionID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary GetSessionQueryOrderResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&summary.Number,
			&summary.Status,
			&summary.TotalPrice,
			&summary.PaymentStatus,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = orderID
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
