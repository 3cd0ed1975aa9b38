package menurepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMenuReader implements MenuReader using GORM. The menu is read-only
// from the service's point of view, so there is no aggregate tracking.
type GormMenuReader struct {
	db *gorm.DB
}

// NewGormMenuReader creates a new GORM menu reader.
func NewGormMenuReader(db *gorm.DB) *GormMenuReader {
	return &GormMenuReader{db: db}
}

// Get retrieves a menu item by ID.
func (r *GormMenuReader) Get(ctx context.Context, id kernel.UUID) (*menu.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu_item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the menu items for the given identifiers. Missing ids
// are absent from the result.
func (r *GormMenuReader) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*menu.MenuItem, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	items := make(map[kernel.UUID]*menu.MenuItem, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items[item.ID()] = item
	}

	return items, nil
}
