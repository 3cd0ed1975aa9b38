package sessionrepo

import (
	"context"
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session to the database. A violation of the one active
// session per table index surfaces as a conflict so callers can re-read
// the winning session and retry.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("table_number", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// CloseActive saves a closed session to the database. The update matches
// the row only while it is still active, so when two transactions race to
// close the same session the one that commits second affects zero rows and
// gets an InvalidStateError instead of overwriting the first close.
func (r *GormSessionRepository) CloseActive(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("id = ? AND status = ?", dto.ID, session.Active.String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidStateError("session is already closed")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByToken retrieves a session by its public token.
func (r *GormSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("session_token")
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session_id", token)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByTable retrieves the active session for a table.
func (r *GormSessionRepository) GetActiveByTable(ctx context.Context, tableNumber string) (*session.Session, error) {
	if tableNumber == "" {
		return nil, errs.NewValueIsRequiredError("table_number")
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "table_number = ? AND status = ?", tableNumber, session.Active.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table_number", tableNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveOlderThan retrieves active sessions created before the cutoff.
func (r *GormSessionRepository) GetActiveOlderThan(ctx context.Context, cutoff time.Time) ([]*session.Session, error) {
	var dtos []SessionDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", session.Active.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*session.Session, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}
