package repository

import (
	"context"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog and inventory
// persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error

	// ApplySale decrements stock and increments sold for every item in one
	// atomic operation. With allowNegative=false it fails with
	// ErrInsufficientStock when any line would push stock below zero, and
	// applies nothing.
	ApplySale(ctx context.Context, items []entity.SaleItem, allowNegative bool) error

	// SetRatingAggregates stores the recomputed review statistics.
	SetRatingAggregates(ctx context.Context, id string, average float64, count int) error
}
