package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
)

func newCartService(carts *MockCartRepository, products *MockProductRepository, coupons *MockCouponRepository) *application.CartService {
	return application.NewCartService(carts, products, coupons, logrus.New())
}

func TestAddItem_CreatesCartOnFirstUse(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	coupons := new(MockCouponRepository)
	svc := newCartService(carts, products, coupons)

	userID := uuid.NewString()
	p := &entity.Product{ID: uuid.NewString(), Price: 100, PriceAfterDiscount: 80}

	products.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	carts.On("GetByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound)
	carts.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Cart) bool {
		// discounted price is frozen onto the line
		return len(c.Items) == 1 && c.Items[0].Price == 80 && c.TotalCartPrice == 160
	})).Return(nil)

	cart, err := svc.AddItem(context.Background(), userID, p.ID, "black", 2)

	assert.NoError(t, err)
	assert.Equal(t, 160.0, cart.TotalCartPrice)
	carts.AssertExpectations(t)
}

func TestAddItem_MergesSameProductAndColor(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	coupons := new(MockCouponRepository)
	svc := newCartService(carts, products, coupons)

	userID := uuid.NewString()
	p := &entity.Product{ID: uuid.NewString(), Price: 50}
	existing := &entity.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
		Items: []entity.CartItem{
			{ID: uuid.NewString(), ProductID: p.ID, Color: "black", Quantity: 1, Price: 50},
		},
		TotalCartPrice: 50,
	}

	products.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	carts.On("GetByUserID", mock.Anything, userID).Return(existing, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.AddItem(context.Background(), userID, p.ID, "black", 1)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 100.0, cart.TotalCartPrice)
}

func TestAddItem_DropsStaleDiscount(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	coupons := new(MockCouponRepository)
	svc := newCartService(carts, products, coupons)

	userID := uuid.NewString()
	p := &entity.Product{ID: uuid.NewString(), Price: 50}
	discounted := 40.0
	existing := &entity.Cart{
		ID:                      uuid.NewString(),
		UserID:                  userID,
		Items:                   []entity.CartItem{{ID: uuid.NewString(), ProductID: uuid.NewString(), Quantity: 1, Price: 50}},
		TotalCartPrice:          50,
		TotalPriceAfterDiscount: &discounted,
	}

	products.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	carts.On("GetByUserID", mock.Anything, userID).Return(existing, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.AddItem(context.Background(), userID, p.ID, "", 1)

	assert.NoError(t, err)
	assert.Nil(t, cart.TotalPriceAfterDiscount)
}

func TestUpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	coupons := new(MockCouponRepository)
	svc := newCartService(carts, products, coupons)

	userID := uuid.NewString()
	itemID := uuid.NewString()
	existing := &entity.Cart{
		ID:             uuid.NewString(),
		UserID:         userID,
		Items:          []entity.CartItem{{ID: itemID, ProductID: uuid.NewString(), Quantity: 3, Price: 10}},
		TotalCartPrice: 30,
	}

	carts.On("GetByUserID", mock.Anything, userID).Return(existing, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.UpdateItemQuantity(context.Background(), userID, itemID, 0)

	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalCartPrice)
}

func TestUpdateItemQuantity_UnknownItem(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	coupons := new(MockCouponRepository)
	svc := newCartService(carts, products, coupons)

	userID := uuid.NewString()
	existing := &entity.Cart{ID: uuid.NewString(), UserID: userID}
	carts.On("GetByUserID", mock.Anything, userID).Return(existing, nil)

	_, err := svc.UpdateItemQuantity(context.Background(), userID, uuid.NewString(), 2)
	assert.ErrorIs(t, err, application.ErrCartItemNotFound)
}

func TestApplyCoupon_ComputesDiscountedTotal(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	coupons := new(MockCouponRepository)
	svc := newCartService(carts, products, coupons)

	userID := uuid.NewString()
	cart := &entity.Cart{
		ID:             uuid.NewString(),
		UserID:         userID,
		Items:          []entity.CartItem{{ID: uuid.NewString(), ProductID: uuid.NewString(), Quantity: 2, Price: 100}},
		TotalCartPrice: 200,
	}
	coupon := &entity.Coupon{Name: "SAVE25", Discount: 25, Expire: time.Now().Add(24 * time.Hour)}

	coupons.On("GetByName", mock.Anything, "SAVE25").Return(coupon, nil)
	carts.On("GetByUserID", mock.Anything, userID).Return(cart, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.ApplyCoupon(context.Background(), userID, "SAVE25")

	assert.NoError(t, err)
	assert.NotNil(t, out.TotalPriceAfterDiscount)
	assert.Equal(t, 150.0, *out.TotalPriceAfterDiscount)
}

func TestApplyCoupon_ExpiredOrUnknown(t *testing.T) {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	coupons := new(MockCouponRepository)
	svc := newCartService(carts, products, coupons)

	expired := &entity.Coupon{Name: "OLD", Discount: 10, Expire: time.Now().Add(-time.Hour)}
	coupons.On("GetByName", mock.Anything, "OLD").Return(expired, nil)
	coupons.On("GetByName", mock.Anything, "NOPE").Return(nil, repository.ErrNotFound)

	_, errExpired := svc.ApplyCoupon(context.Background(), uuid.NewString(), "OLD")
	_, errUnknown := svc.ApplyCoupon(context.Background(), uuid.NewString(), "NOPE")

	assert.ErrorIs(t, errExpired, application.ErrCouponInvalid)
	assert.ErrorIs(t, errUnknown, application.ErrCouponInvalid)
}
