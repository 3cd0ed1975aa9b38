package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetInvoiceDataQueryHandler assembles the invoice read model from the
// database. The tax breakdown is computed from the stored item subtotals
// with the configured rate, matching the arithmetic the billing service
// applies when the session is settled.
type GetInvoiceDataQueryHandler struct {
	db      *gorm.DB
	taxRate decimal.Decimal
}

// NewGetInvoiceDataQueryHandler creates a handler for invoice queries.
// Returns an error if the tax rate is negative.
func NewGetInvoiceDataQueryHandler(db *gorm.DB, taxRate decimal.Decimal) (GetInvoiceDataQueryHandler, error) {
	if taxRate.IsNegative() {
		return GetInvoiceDataQueryHandler{}, errs.NewValueIsOutOfRangeError(
			"tax_rate", taxRate.String(), "0", "1")
	}
	return GetInvoiceDataQueryHandler{db: db, taxRate: taxRate}, nil
}

// Handle executes the query. Returns ObjectNotFoundError if the session does
// not exist. A session with only cancelled orders yields an invoice with no
// lines and zero totals.
func (h GetInvoiceDataQueryHandler) Handle(
	ctx context.Context,
	query GetInvoiceDataQuery,
) (GetInvoiceDataQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInvoiceDataQueryResponse{}, err
	}

	var response GetInvoiceDataQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.token,
			s.table_number,
			COALESCE(c.name, ''),
			s.created_at,
			s.closed_at
		FROM dining_sessions s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.token = ?
	`, query.SessionToken()).Row()

	var id uuid.UUID
	var openedAt time.Time
	var closedAt sql.NullTime
	err := row.Scan(
		&id,
		&response.Token,
		&response.TableNumber,
		&response.CustomerName,
		&openedAt,
		&closedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetInvoiceDataQueryResponse{}, errs.NewObjectNotFoundError("session_id", query.SessionToken())
		}
		return GetInvoiceDataQueryResponse{}, err
	}

	sessionID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetInvoiceDataQueryResponse{}, err
	}
	response.SessionID = sessionID
	response.OpenedAt = openedAt
	if closedAt.Valid {
		response.ClosedAt = &closedAt.Time
	}

	lines, subtotal, err := h.loadLines(ctx, sessionID)
	if err != nil {
		return GetInvoiceDataQueryResponse{}, err
	}

	taxAmount := subtotal.MulRate(h.taxRate)
	response.Lines = lines
	response.Subtotal = subtotal.Float64()
	response.TaxRate, _ = h.taxRate.Float64()
	response.TaxAmount = taxAmount.Float64()
	response.GrandTotal = subtotal.Add(taxAmount).Float64()
	response.IssuedAt = time.Now().UTC()

	return response, nil
}

// loadLines flattens the session's billable orders into per-dish invoice
// lines, keeping the order in which dishes were requested.
func (h GetInvoiceDataQueryHandler) loadLines(
	ctx context.Context,
	sessionID kernel.UUID,
) ([]GetInvoiceDataQueryLineResponse, kernel.Money, error) {
	lines := make([]GetInvoiceDataQueryLineResponse, 0)
	subtotal := kernel.ZeroMoney()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.number,
			m.name,
			oi.quantity,
			oi.unit_price,
			oi.subtotal
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE o.session_id = ? AND o.status != ?
		ORDER BY o.created_at, oi.created_at
	`, sessionID.Bytes(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, kernel.Money{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line GetInvoiceDataQueryLineResponse
		var lineTotal decimal.Decimal

		err = rows.Scan(
			&line.OrderNumber,
			&line.MenuItemName,
			&line.Quantity,
			&line.UnitPrice,
			&lineTotal,
		)
		if err != nil {
			return nil, kernel.Money{}, err
		}

		amount, moneyErr := kernel.NewMoney(lineTotal)
		if moneyErr != nil {
			return nil, kernel.Money{}, moneyErr
		}

		line.Subtotal = amount.Float64()
		subtotal = subtotal.Add(amount)
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, kernel.Money{}, err
	}

	return lines, subtotal, nil
}
