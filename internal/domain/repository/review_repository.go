package repository

import (
	"context"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.Review, error)
	Delete(ctx context.Context, id string) error

	// AggregateForProduct computes the mean rating and review count over all
	// reviews of the product. Zero reviews yields (0, 0, nil).
	AggregateForProduct(ctx context.Context, productID string) (average float64, count int, err error)
}
