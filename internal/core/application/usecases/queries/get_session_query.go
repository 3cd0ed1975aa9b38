package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetSessionQueryIsNotConstructed = errors.New(
		"GetSessionQuery must be created via NewGetSessionQuery constructor",
	)
)

// GetSessionQuery retrieves a dining session together with a summary of every
// order placed in it, oldest first. Used by diners reviewing their table and
// by staff checking what a table has ordered so far.
//
// Sessions are addressed by their public token, the opaque identifier handed
// out when the session is opened.
type GetSessionQuery struct {
	sessionToken string
	guard        guard.ConstructorGuard
}

// NewGetSessionQuery creates a query for a single session by its public token.
func NewGetSessionQuery(sessionToken string) (GetSessionQuery, error) {
	if sessionToken == "" {
		return GetSessionQuery{}, errs.NewValueIsRequiredError("session_token")
	}
	return GetSessionQuery{
		sessionToken: sessionToken,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// SessionToken returns the public token of the session to fetch.
func (q GetSessionQuery) SessionToken() string {
	return q.sessionToken
}

// Validate ensures the query was created through the constructor.
func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

// GetSessionQueryResponse carries the session read model.
type GetSessionQueryResponse struct {
	ID          kernel.UUID
	Token       string
	TableNumber string
	Status      string
	Orders      []GetSessionQueryOrderResponse
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

// GetSessionQueryOrderResponse is one order summary line of the session
// read model.
type GetSessionQueryOrderResponse struct {
	ID            kernel.UUID
	Number        string
	Status        string
	TotalPrice    float64
	PaymentStatus string
	CreatedAt     time.Time
}
