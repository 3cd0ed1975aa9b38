// Package sessionrepo provides data transfer objects and mapping functions for
// dining session persistence. Implements the repository pattern for the session
// aggregate, converting between domain entities and database rows.
package sessionrepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting session
// aggregates. The at-most-one-active-session-per-table rule is enforced by
// a partial unique index on (table_number) WHERE status = 'ACTIVE', created
// during migration; GORM tags cannot express partial indexes.
type SessionDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Token       string     `gorm:"uniqueIndex"`
	TableNumber string     `gorm:"index"`
	CustomerID  *uuid.UUID `gorm:"type:uuid"`
	Status      string     `gorm:"index"`
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

// TableName specifies the database table name for session entities.
func (SessionDTO) TableName() string {
	return "dining_sessions"
}

// fromDomain converts a session domain aggregate to its database representation.
func fromDomain(aggregate *session.Session) SessionDTO {
	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	return SessionDTO{
		ID:          aggregate.ID().Bytes(),
		Token:       aggregate.Token(),
		TableNumber: aggregate.TableNumber(),
		CustomerID:  customerID,
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		ClosedAt:    aggregate.ClosedAt(),
	}
}

// toDomain converts a database DTO to a session domain aggregate.
func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	status, err := session.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return session.RestoreSession(id, dto.Token, dto.TableNumber, customerID, status, dto.CreatedAt, dto.ClosedAt)
}
