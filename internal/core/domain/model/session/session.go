package session

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was not created
	// through the NewSession or RestoreSession factory methods.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")
)

// Session represents one table's dining session: the aggregate that groups
// every order placed between the table being seated and the bill being
// settled.
//
// Session follows these invariants:
//   - Must have a valid unique identifier and a non-empty opaque token
//   - Must reference a non-empty table number
//   - Status transitions ACTIVE -> CLOSED exactly once; closed_at is set
//     only on close and never cleared
//   - Can only be created through NewSession or RestoreSession
//
// The at-most-one-ACTIVE-session-per-table invariant spans aggregate
// instances and is enforced by the storage layer's unique index; see the
// sessionrepo adapter.
type Session struct {
	// id is the internal unique identifier for the session
	id kernel.UUID

	// token is the opaque human-readable session token handed to clients
	token string

	// tableNumber identifies the table this session belongs to
	tableNumber string

	// customerID optionally references the customer who opened the session
	customerID *kernel.UUID

	// status is the current lifecycle state
	status Status

	// createdAt is when the session was opened
	createdAt time.Time

	// closedAt is set exactly once, when the session closes
	closedAt *time.Time

	// isConstructed ensures the session was created via a factory method
	isConstructed bool
}

// NewSession creates a new ACTIVE Session for a table.
//
// Parameters:
//   - id: internal unique identifier (must be valid UUID)
//   - token: opaque session token (must be non-empty; see kernel.NewSessionToken)
//   - tableNumber: the table the session belongs to (must be non-empty)
//   - customerID: optional originating customer
//
// The session starts in Active status with createdAt set to the current
// UTC time and no closedAt.
func NewSession(id kernel.UUID, token string, tableNumber string, customerID *kernel.UUID) (*Session, error) {
	s := &Session{
		status:        Active,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setToken(token),
		s.setTableNumber(tableNumber),
		s.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSession reconstructs a Session from persistence.
// All fields, including status and timestamps, are taken as stored;
// the same validation as NewSession applies to identifiers and the table
// number, and the status must be a valid lifecycle state.
func RestoreSession(
	id kernel.UUID,
	token string,
	tableNumber string,
	customerID *kernel.UUID,
	status Status,
	createdAt time.Time,
	closedAt *time.Time,
) (*Session, error) {
	s := &Session{
		createdAt:     createdAt,
		closedAt:      closedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setToken(token),
		s.setTableNumber(tableNumber),
		s.setCustomerID(customerID),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Session instance was properly constructed through a
// factory method. Returns ErrSessionIsNotConstructed otherwise.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}

	return nil
}

// IsEqual compares two sessions by their unique identifiers.
func (s *Session) IsEqual(other *Session) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the session's internal unique identifier.
func (s *Session) ID() kernel.UUID {
	return s.id
}

// Token returns the opaque session token handed to clients.
func (s *Session) Token() string {
	return s.token
}

// TableNumber returns the table this session belongs to.
func (s *Session) TableNumber() string {
	return s.tableNumber
}

// CustomerID returns the originating customer's ID, or nil.
func (s *Session) CustomerID() *kernel.UUID {
	return s.customerID
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// CreatedAt returns when the session was opened.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// ClosedAt returns when the session was closed, or nil while it is active.
func (s *Session) ClosedAt() *time.Time {
	return s.closedAt
}

// IsActive reports whether the session still accepts orders.
func (s *Session) IsActive() bool {
	return s.status == Active
}

// Close transitions the session to Closed and stamps closedAt.
//
// This method enforces the following business rules:
//   - The session must currently be Active
//   - Closing is irreversible; a second Close returns an error that
//     unwraps to errs.ErrInvalidState and leaves the session unchanged
//
// The zero-orders rule (a session with no orders cannot be closed through
// billing) is enforced by the finish-session handler, which owns the order
// lookup.
func (s *Session) Close() error {
	newStatus, err := s.status.Close()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	s.status = newStatus
	s.closedAt = &now
	return nil
}

// setID validates and sets the session's unique identifier.
// This is a private method used only during construction.
func (s *Session) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Session) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}
	s.token = token
	return nil
}

func (s *Session) setTableNumber(tableNumber string) error {
	if tableNumber == "" {
		return errs.NewValueIsRequiredError("table_number")
	}
	s.tableNumber = tableNumber
	return nil
}

func (s *Session) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	s.customerID = customerID
	return nil
}

func (s *Session) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
