package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
	"github.com/gocommerce/shop-api/pkg/helpers"
	"github.com/gocommerce/shop-api/pkg/mailer"
	"github.com/gocommerce/shop-api/pkg/payment"
)

// OrderService turns carts into orders. Cash orders settle immediately;
// card orders go through a hosted checkout session and settle when the
// provider's webhook arrives.
type OrderService struct {
	Orders   repo.OrderRepository
	Carts    repo.CartRepository
	Products repo.ProductRepository
	Users    repo.UserRepository

	Payment   *payment.Client
	Publisher *helpers.RabbitPublisher
	Logger    *logrus.Logger

	Currency           string
	BaseURL            string
	StockAllowNegative bool
}

func NewOrderService(orders repo.OrderRepository, carts repo.CartRepository, products repo.ProductRepository, users repo.UserRepository,
	pay *payment.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger,
	currency, baseURL string, stockAllowNegative bool) *OrderService {
	return &OrderService{
		Orders:             orders,
		Carts:              carts,
		Products:           products,
		Users:              users,
		Payment:            pay,
		Publisher:          pub,
		Logger:             logger,
		Currency:           currency,
		BaseURL:            baseURL,
		StockAllowNegative: stockAllowNegative,
	}
}

// CreateCashOrder checks out the cart for payment on delivery. The cart
// delete is the commit point: of two concurrent checkouts of the same cart
// only the one whose delete removed the row creates an order.
func (s *OrderService) CreateCashOrder(ctx context.Context, userID, cartID string, addr entity.ShippingAddress) (*entity.Order, error) {
	cart, err := s.loadOwnedCart(ctx, userID, cartID)
	if err != nil {
		return nil, err
	}

	consumed, err := s.Carts.Delete(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrCartNotFound
	}

	order := orderFromCart(cart, addr, entity.PaymentCash, cart.ChargeAmount())
	return s.settle(ctx, order, cart.SaleItems())
}

// CheckoutSession opens a hosted card-payment session for the cart. The
// cart id rides along as the client reference so the completion webhook can
// find it; the shipping address travels in the session metadata.
func (s *OrderService) CheckoutSession(ctx context.Context, user *entity.User, cartID string, addr entity.ShippingAddress) (*payment.CheckoutSession, error) {
	cart, err := s.loadOwnedCart(ctx, user.ID, cartID)
	if err != nil {
		return nil, err
	}

	session, err := s.Payment.CreateCheckoutSession(ctx, payment.CheckoutSessionParams{
		AmountCents:       int64(math.Round(cart.ChargeAmount() * 100)),
		Currency:          s.Currency,
		ProductName:       "Order for " + user.Name,
		SuccessURL:        s.BaseURL + "/orders",
		CancelURL:         s.BaseURL + "/cart",
		CustomerEmail:     user.Email,
		ClientReferenceID: cart.ID,
		Metadata: map[string]string{
			"details":     addr.Details,
			"phone":       addr.Phone,
			"city":        addr.City,
			"postal_code": addr.PostalCode,
		},
	})
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("cart_id", cart.ID).Error("create checkout session failed")
		}
		return nil, err
	}
	return session, nil
}

// HandleCheckoutCompleted reconciles a paid checkout session into an order.
// Delivery is at-least-once, so a session whose cart is already consumed is
// acknowledged as a no-op rather than treated as an error.
func (s *OrderService) HandleCheckoutCompleted(ctx context.Context, session *payment.CheckoutSession) error {
	user, err := s.Users.GetByEmail(ctx, session.CustomerEmail)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	cart, err := s.Carts.GetByID(ctx, session.ClientReferenceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Redelivery after a successful reconciliation.
			if s.Logger != nil {
				s.Logger.WithField("cart_id", session.ClientReferenceID).Info("checkout event for consumed cart, skipping")
			}
			return nil
		}
		return err
	}

	consumed, err := s.Carts.Delete(ctx, cart.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return nil
	}

	now := time.Now()
	addr := entity.ShippingAddress{
		Details:    session.Metadata["details"],
		Phone:      session.Metadata["phone"],
		City:       session.Metadata["city"],
		PostalCode: session.Metadata["postal_code"],
	}
	order := orderFromCart(cart, addr, entity.PaymentCard, float64(session.AmountTotal)/100)
	order.UserID = user.ID
	order.IsPaid = true
	order.PaidAt = &now

	_, err = s.settle(ctx, order, cart.SaleItems())
	return err
}

// settle reconciles inventory, persists the order and queues the
// confirmation email. Inventory goes first so a stock-floor reject leaves
// no order in the ledger.
func (s *OrderService) settle(ctx context.Context, order *entity.Order, sale []entity.SaleItem) (*entity.Order, error) {
	if err := s.Products.ApplySale(ctx, sale, s.StockAllowNegative); err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("inventory reconciliation failed")
		}
		return nil, err
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", order.UserID).Error("order persist failed after inventory was applied")
		}
		return nil, err
	}
	s.enqueueConfirmation(ctx, order)
	return order, nil
}

func (s *OrderService) loadOwnedCart(ctx context.Context, userID, cartID string) (*entity.Cart, error) {
	cart, err := s.Carts.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	if cart.UserID != userID {
		return nil, ErrForbidden
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

func orderFromCart(cart *entity.Cart, addr entity.ShippingAddress, method entity.PaymentMethod, total float64) *entity.Order {
	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Price:     it.Price,
		})
	}
	return &entity.Order{
		UserID:            cart.UserID,
		Items:             items,
		ShippingAddress:   addr,
		TotalOrderPrice:   total,
		PaymentMethodType: method,
	}
}

// Get returns one order. Customers only see their own; staff see all.
func (s *OrderService) Get(ctx context.Context, requester *entity.User, id string) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if requester.Role == entity.RoleUser && o.UserID != requester.ID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// List returns orders, narrowed to the requester's own for customers.
func (s *OrderService) List(ctx context.Context, requester *entity.User, limit, offset int) ([]entity.Order, error) {
	f := repo.OrderFilter{Limit: limit, Offset: offset}
	if requester.Role == entity.RoleUser {
		f.UserID = requester.ID
	}
	return s.Orders.List(ctx, f)
}

// MarkPaid records an out-of-band payment, e.g. cash received on delivery.
func (s *OrderService) MarkPaid(ctx context.Context, id string) error {
	if err := s.Orders.MarkPaid(ctx, id, time.Now()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id string) error {
	if err := s.Orders.MarkDelivered(ctx, id, time.Now()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

func (s *OrderService) enqueueConfirmation(ctx context.Context, o *entity.Order) {
	if s.Publisher == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, o.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID).Warn("lookup user for confirmation email failed")
		}
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateOrderConfirmation,
		Data: map[string]any{
			"Name":          u.Name,
			"OrderID":       o.ID,
			"Total":         fmt.Sprintf("%.2f", o.TotalOrderPrice),
			"Currency":      strings.ToUpper(s.Currency),
			"PaymentMethod": string(o.PaymentMethodType),
		},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Error("enqueue confirmation email failed")
	}
}
