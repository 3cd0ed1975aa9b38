package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
)

// MenuReader defines read access to the menu catalog. The ordering flow
// only prices against the menu; there are no write operations.
type MenuReader interface {
	// Get retrieves a menu item by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such item exists.
	Get(ctx context.Context, id kernel.UUID) (*menu.MenuItem, error)

	// GetByIDs retrieves the menu items for the given identifiers.
	// Missing ids are simply absent from the result; callers decide
	// whether that is an error.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*menu.MenuItem, error)
}
