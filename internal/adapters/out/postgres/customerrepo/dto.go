// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence.
package customerrepo

import (
	"time"

	"tableside/internal/core/domain/model/customer"
	"tableside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customers.
// Phone carries a unique index; it is the natural key the ordering flow
// upserts by.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Phone     string `gorm:"uniqueIndex"`
	Email     string
	CreatedAt time.Time
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// fromDomain converts a customer entity to its database representation.
func fromDomain(entity *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        entity.ID().Bytes(),
		Name:      entity.Name(),
		Phone:     entity.Phone(),
		Email:     entity.Email(),
		CreatedAt: entity.CreatedAt(),
	}
}

// toDomain converts a database DTO to a customer entity.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Phone, dto.Email, dto.CreatedAt)
}
