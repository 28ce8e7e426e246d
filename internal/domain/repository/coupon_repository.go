package repository

import (
	"context"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

// CouponRepository defines the interface for coupon persistence.
type CouponRepository interface {
	Create(ctx context.Context, c *entity.Coupon) error
	GetByName(ctx context.Context, name string) (*entity.Coupon, error)
	List(ctx context.Context) ([]entity.Coupon, error)
	Delete(ctx context.Context, id string) error
}
