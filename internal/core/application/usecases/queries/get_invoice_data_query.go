package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetInvoiceDataQueryIsNotConstructed = errors.New(
		"GetInvoiceDataQuery must be created via NewGetInvoiceDataQuery constructor",
	)
)

// GetInvoiceDataQuery retrieves everything needed to render a session's
// invoice: the session itself, one line per dish ordered, and the tax
// breakdown. Cancelled orders never appear on an invoice.
//
// Sessions are addressed by their public token.
type GetInvoiceDataQuery struct {
	sessionToken string
	guard        guard.ConstructorGuard
}

// NewGetInvoiceDataQuery creates an invoice query for a session.
func NewGetInvoiceDataQuery(sessionToken string) (GetInvoiceDataQuery, error) {
	if sessionToken == "" {
		return GetInvoiceDataQuery{}, errs.NewValueIsRequiredError("session_token")
	}
	return GetInvoiceDataQuery{
		sessionToken: sessionToken,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// SessionToken returns the public token of the session to invoice.
func (q GetInvoiceDataQuery) SessionToken() string {
	return q.sessionToken
}

// Validate ensures the query was created through the constructor.
func (q GetInvoiceDataQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceDataQueryIsNotConstructed)
}

// GetInvoiceDataQueryResponse carries the rendered invoice data.
// All amounts are fixed to two decimal places.
type GetInvoiceDataQueryResponse struct {
	SessionID    kernel.UUID
	Token        string
	TableNumber  string
	CustomerName string
	Lines        []GetInvoiceDataQueryLineResponse
	Subtotal     float64
	TaxRate      float64
	TaxAmount    float64
	GrandTotal   float64
	OpenedAt     time.Time
	ClosedAt     *time.Time
	IssuedAt     time.Time
}

// GetInvoiceDataQueryLineResponse is one ordered dish on the invoice,
// priced at the snapshot taken when the order was placed. OrderNumber ties
// the line back to the order it came from when a session spans several
// orders.
type GetInvoiceDataQueryLineResponse struct {
	OrderNumber  string
	MenuItemName string
	Quantity     int
	UnitPrice    float64
	Subtotal     float64
}
