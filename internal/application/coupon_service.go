package application

import (
	"context"
	"errors"
	"time"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
)

// CouponService manages the discount codes managers hand out.
type CouponService struct {
	Coupons repo.CouponRepository
}

func NewCouponService(coupons repo.CouponRepository) *CouponService {
	return &CouponService{Coupons: coupons}
}

func (s *CouponService) Create(ctx context.Context, name string, discount float64, expire time.Time) (*entity.Coupon, error) {
	c := &entity.Coupon{Name: name, Discount: discount, Expire: expire}
	if err := s.Coupons.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrCouponExists
		}
		return nil, err
	}
	return c, nil
}

func (s *CouponService) List(ctx context.Context) ([]entity.Coupon, error) {
	return s.Coupons.List(ctx)
}

func (s *CouponService) Get(ctx context.Context, name string) (*entity.Coupon, error) {
	c, err := s.Coupons.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	if err := s.Coupons.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCouponNotFound
		}
		return err
	}
	return nil
}
