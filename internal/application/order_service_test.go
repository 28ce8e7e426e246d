package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
	"github.com/gocommerce/shop-api/pkg/payment"
)

func newOrderService(orders *MockOrderRepository, carts *MockCartRepository, products *MockProductRepository, users *MockUserRepository, allowNegative bool) *application.OrderService {
	return application.NewOrderService(orders, carts, products, users,
		nil, nil, logrus.New(), "usd", "http://localhost:8080", allowNegative)
}

func testAddress() entity.ShippingAddress {
	return entity.ShippingAddress{Details: "12 Main St", Phone: "+14155551234", City: "Springfield", PostalCode: "12345"}
}

func discountedCart(userID string) *entity.Cart {
	discounted := 150.0
	return &entity.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
		Items: []entity.CartItem{
			{ID: uuid.NewString(), ProductID: uuid.NewString(), Quantity: 2, Price: 100},
		},
		TotalCartPrice:          200,
		TotalPriceAfterDiscount: &discounted,
	}
}

func TestCreateCashOrder_ChargesDiscountedTotal(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	userID := uuid.NewString()
	cart := discountedCart(userID)

	carts.On("GetByID", mock.Anything, cart.ID).Return(cart, nil)
	carts.On("Delete", mock.Anything, cart.ID).Return(true, nil)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.TotalOrderPrice == 150 && o.PaymentMethodType == entity.PaymentCash && !o.IsPaid
	})).Return(nil)
	products.On("ApplySale", mock.Anything, cart.SaleItems(), true).Return(nil)

	order, err := svc.CreateCashOrder(context.Background(), userID, cart.ID, testAddress())

	assert.NoError(t, err)
	assert.Equal(t, 150.0, order.TotalOrderPrice)
	assert.Len(t, order.Items, 1)
	orders.AssertExpectations(t)
	carts.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestCreateCashOrder_UndiscountedCartChargesFullTotal(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	userID := uuid.NewString()
	cart := discountedCart(userID)
	cart.TotalPriceAfterDiscount = nil

	carts.On("GetByID", mock.Anything, cart.ID).Return(cart, nil)
	carts.On("Delete", mock.Anything, cart.ID).Return(true, nil)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.TotalOrderPrice == 200
	})).Return(nil)
	products.On("ApplySale", mock.Anything, mock.Anything, true).Return(nil)

	_, err := svc.CreateCashOrder(context.Background(), userID, cart.ID, testAddress())
	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestCreateCashOrder_SameProductInTwoColorsDecrementsOnce(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	userID := uuid.NewString()
	productID := uuid.NewString()
	cart := &entity.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
		Items: []entity.CartItem{
			{ID: uuid.NewString(), ProductID: productID, Color: "black", Quantity: 2, Price: 40},
			{ID: uuid.NewString(), ProductID: productID, Color: "red", Quantity: 3, Price: 40},
		},
		TotalCartPrice: 200,
	}

	carts.On("GetByID", mock.Anything, cart.ID).Return(cart, nil)
	carts.On("Delete", mock.Anything, cart.ID).Return(true, nil)
	// One adjustment for the product, summed across the color lines.
	products.On("ApplySale", mock.Anything,
		[]entity.SaleItem{{ProductID: productID, Quantity: 5}}, true).Return(nil)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.CreateCashOrder(context.Background(), userID, cart.ID, testAddress())

	assert.NoError(t, err)
	assert.Len(t, order.Items, 2)
	products.AssertExpectations(t)
}

func TestCreateCashOrder_ConsumedCartCreatesNoOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	userID := uuid.NewString()
	cart := discountedCart(userID)

	carts.On("GetByID", mock.Anything, cart.ID).Return(cart, nil)
	// Another checkout removed the cart between the load and the delete.
	carts.On("Delete", mock.Anything, cart.ID).Return(false, nil)

	_, err := svc.CreateCashOrder(context.Background(), userID, cart.ID, testAddress())

	assert.ErrorIs(t, err, application.ErrCartNotFound)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "ApplySale", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCashOrder_ForeignCartRejected(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	cart := discountedCart(uuid.NewString())
	carts.On("GetByID", mock.Anything, cart.ID).Return(cart, nil)

	_, err := svc.CreateCashOrder(context.Background(), uuid.NewString(), cart.ID, testAddress())

	assert.ErrorIs(t, err, application.ErrForbidden)
	carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateCashOrder_InsufficientStock(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, false)

	userID := uuid.NewString()
	cart := discountedCart(userID)

	carts.On("GetByID", mock.Anything, cart.ID).Return(cart, nil)
	carts.On("Delete", mock.Anything, cart.ID).Return(true, nil)
	products.On("ApplySale", mock.Anything, mock.Anything, false).Return(repository.ErrInsufficientStock)

	_, err := svc.CreateCashOrder(context.Background(), userID, cart.ID, testAddress())

	assert.ErrorIs(t, err, application.ErrInsufficientStock)
	// A rejected sale must not leave an order in the ledger.
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleCheckoutCompleted_CreatesPaidCardOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	user := &entity.User{ID: uuid.NewString(), Email: "buyer@example.com", Role: entity.RoleUser}
	cart := discountedCart(user.ID)
	session := &payment.CheckoutSession{
		ID:                "cs_test_1",
		AmountTotal:       5000,
		Currency:          "usd",
		CustomerEmail:     user.Email,
		ClientReferenceID: cart.ID,
		Metadata:          map[string]string{"details": "12 Main St", "phone": "+14155551234", "city": "Springfield", "postal_code": "12345"},
	}

	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	carts.On("GetByID", mock.Anything, cart.ID).Return(cart, nil)
	carts.On("Delete", mock.Anything, cart.ID).Return(true, nil)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.TotalOrderPrice == 50.0 &&
			o.PaymentMethodType == entity.PaymentCard &&
			o.IsPaid && o.PaidAt != nil &&
			o.ShippingAddress.City == "Springfield"
	})).Return(nil)
	products.On("ApplySale", mock.Anything, cart.SaleItems(), true).Return(nil)

	err := svc.HandleCheckoutCompleted(context.Background(), session)

	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestHandleCheckoutCompleted_RedeliveryIsNoop(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	user := &entity.User{ID: uuid.NewString(), Email: "buyer@example.com"}
	session := &payment.CheckoutSession{
		CustomerEmail:     user.Email,
		ClientReferenceID: uuid.NewString(),
	}

	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	carts.On("GetByID", mock.Anything, session.ClientReferenceID).Return(nil, repository.ErrNotFound)

	err := svc.HandleCheckoutCompleted(context.Background(), session)

	assert.NoError(t, err)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestList_CustomerOnlySeesOwnOrders(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	customer := &entity.User{ID: uuid.NewString(), Role: entity.RoleUser}
	orders.On("List", mock.Anything, repository.OrderFilter{UserID: customer.ID, Limit: 10}).Return([]entity.Order{}, nil)

	_, err := svc.List(context.Background(), customer, 10, 0)
	assert.NoError(t, err)
	orders.AssertExpectations(t)

	admin := &entity.User{ID: uuid.NewString(), Role: entity.RoleAdmin}
	orders.On("List", mock.Anything, repository.OrderFilter{Limit: 10}).Return([]entity.Order{}, nil)

	_, err = svc.List(context.Background(), admin, 10, 0)
	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestGet_CustomerCannotSeeForeignOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, carts, products, users, true)

	customer := &entity.User{ID: uuid.NewString(), Role: entity.RoleUser}
	order := &entity.Order{ID: uuid.NewString(), UserID: uuid.NewString()}
	orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.Get(context.Background(), customer, order.ID)
	assert.ErrorIs(t, err, application.ErrOrderNotFound)
}
