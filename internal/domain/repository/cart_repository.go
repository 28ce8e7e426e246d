package repository

import (
	"context"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

// CartRepository defines the interface for cart persistence.
type CartRepository interface {
	Create(ctx context.Context, c *entity.Cart) error
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)

	// Save rewrites the cart's items and totals.
	Save(ctx context.Context, c *entity.Cart) error

	// Delete removes the cart and reports whether this call removed it.
	// Checkout uses the return value as a compare-and-delete guard: of two
	// concurrent consumers of the same cart only one observes true.
	Delete(ctx context.Context, id string) (bool, error)
}
