package application

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
)

// CartService maintains one cart per user. Every mutation reprices the
// cart and drops any applied coupon, so a discount can never survive a
// change to the items it was computed over.
type CartService struct {
	Carts    repo.CartRepository
	Products repo.ProductRepository
	Coupons  repo.CouponRepository
	Logger   *logrus.Logger
}

func NewCartService(carts repo.CartRepository, products repo.ProductRepository, coupons repo.CouponRepository, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Products: products, Coupons: coupons, Logger: logger}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func repriceCart(c *entity.Cart) {
	total := 0.0
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	c.TotalCartPrice = round2(total)
	c.TotalPriceAfterDiscount = nil
}

// Get returns the caller's cart.
func (s *CartService) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	c, err := s.Carts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return c, nil
}

// AddItem puts a product into the caller's cart, creating the cart on
// first use. The same product in the same color merges into one line; the
// line price is frozen at the product's current effective price.
func (s *CartService) AddItem(ctx context.Context, userID, productID, color string, quantity int) (*entity.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	price := p.Price
	if p.PriceAfterDiscount > 0 {
		price = p.PriceAfterDiscount
	}

	c, err := s.Carts.GetByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		c = &entity.Cart{
			UserID: userID,
			Items:  []entity.CartItem{{ProductID: productID, Color: color, Quantity: quantity, Price: price}},
		}
		repriceCart(c)
		if err := s.Carts.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Color == color {
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, entity.CartItem{ProductID: productID, Color: color, Quantity: quantity, Price: price})
	}
	repriceCart(c)
	if err := s.Carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItemQuantity sets the quantity of one cart line. Zero or negative
// removes the line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*entity.Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = quantity
	}
	repriceCart(c)
	if err := s.Carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops one line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*entity.Cart, error) {
	return s.UpdateItemQuantity(ctx, userID, itemID, 0)
}

// Clear deletes the caller's cart entirely.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.Carts.Delete(ctx, c.ID); err != nil {
		return err
	}
	return nil
}

// ApplyCoupon stores the discounted total on the cart. The checkout later
// charges this amount instead of the raw total.
func (s *CartService) ApplyCoupon(ctx context.Context, userID, couponName string) (*entity.Cart, error) {
	coupon, err := s.Coupons.GetByName(ctx, couponName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCouponInvalid
		}
		return nil, err
	}
	if coupon.Expired(time.Now()) {
		return nil, ErrCouponInvalid
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	discounted := round2(c.TotalCartPrice * (100 - coupon.Discount) / 100)
	c.TotalPriceAfterDiscount = &discounted
	if err := s.Carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
