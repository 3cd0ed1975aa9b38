package ports

import (
	"context"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for dining session
// aggregates. Storage must enforce at most one active session per table;
// Add surfaces a violation as a uniqueness conflict.
type SessionRepository interface {
	// Add persists a new session aggregate to storage.
	Add(ctx context.Context, aggregate *session.Session) error

	// CloseActive persists an active to closed transition. The write is
	// conditioned on the stored row still being active, so the loser of
	// two concurrent closes receives errs.InvalidStateError instead of
	// silently closing the session a second time.
	CloseActive(ctx context.Context, aggregate *session.Session) error

	// Get retrieves a session aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)

	// GetByToken retrieves a session aggregate by its public token.
	// Returns errs.ObjectNotFoundError when no session carries the token.
	GetByToken(ctx context.Context, token string) (*session.Session, error)

	// GetActiveByTable retrieves the active session for a table, if any.
	// Returns errs.ObjectNotFoundError when the table has no active session.
	GetActiveByTable(ctx context.Context, tableNumber string) (*session.Session, error)

	// GetActiveOlderThan retrieves active sessions created before the cutoff.
	// Used by the abandonment job to find stale sessions.
	GetActiveOlderThan(ctx context.Context, cutoff time.Time) ([]*session.Session, error)
}
