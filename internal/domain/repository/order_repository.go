package repository

import (
	"context"
	"time"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

// OrderFilter narrows order listings. A zero UserID means no restriction.
type OrderFilter struct {
	UserID string
	Limit  int
	Offset int
}

// OrderRepository defines the interface for the order ledger.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]entity.Order, error)
	MarkPaid(ctx context.Context, id string, at time.Time) error
	MarkDelivered(ctx context.Context, id string, at time.Time) error
}
