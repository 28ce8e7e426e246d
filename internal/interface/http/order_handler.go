package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/interface/middleware"
	"github.com/gocommerce/shop-api/pkg/payment"
	"github.com/gocommerce/shop-api/pkg/response"
	"github.com/gocommerce/shop-api/pkg/validation"
)

// SignatureHeader carries the payment provider's webhook signature.
const SignatureHeader = "Webhook-Signature"

type OrderHandler struct {
	Service       *application.OrderService
	WebhookSecret string
	Logger        *logrus.Logger
}

func NewOrderHandler(service *application.OrderService, webhookSecret string, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Service: service, WebhookSecret: webhookSecret, Logger: logger}
}

type shippingAddressRequest struct {
	Details    string `json:"details" binding:"required"`
	Phone      string `json:"phone" binding:"required,phone"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

func (r *shippingAddressRequest) toAddress() entity.ShippingAddress {
	return entity.ShippingAddress{
		Details:    r.Details,
		Phone:      r.Phone,
		City:       r.City,
		PostalCode: r.PostalCode,
	}
}

type createOrderRequest struct {
	ShippingAddress shippingAddressRequest `json:"shipping_address" binding:"required"`
}

// CreateCashOrder checks out the cart for payment on delivery.
func (h *OrderHandler) CreateCashOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	order, err := h.Service.CreateCashOrder(c.Request.Context(), c.GetString("userID"), c.Param("cartId"), req.ShippingAddress.toAddress())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toOrderView(order), "order created", nil)
}

// CheckoutSession opens a hosted card-payment session for the cart and
// returns the provider URL the client should redirect to.
func (h *OrderHandler) CheckoutSession(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	session, err := h.Service.CheckoutSession(c.Request.Context(), middleware.CurrentUser(c), c.Param("cartId"), req.ShippingAddress.toAddress())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, session, "checkout session created", nil)
}

func (h *OrderHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	orders, err := h.Service.List(c.Request.Context(), middleware.CurrentUser(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderViews(orders), "orders", nil)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.Service.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderView(order), "order", nil)
}

func (h *OrderHandler) MarkPaid(c *gin.Context) {
	if err := h.Service.MarkPaid(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "order marked as paid", nil)
}

func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	if err := h.Service.MarkDelivered(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "order marked as delivered", nil)
}

// Webhook receives payment provider events. The signature is verified over
// the raw body before anything is parsed. A processing failure answers
// non-2xx so the provider redelivers; reconciliation is idempotent, so
// redelivery is safe.
func (h *OrderHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read body", nil)
		return
	}

	event, err := payment.ConstructEvent(payload, c.GetHeader(SignatureHeader), h.WebhookSecret, payment.DefaultTolerance)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid signature", nil)
		return
	}

	if event.Type != payment.EventCheckoutSessionCompleted {
		// Unhandled event types are acknowledged so the provider stops
		// redelivering them.
		response.Success[any](c, http.StatusOK, nil, "ignored", nil)
		return
	}

	session, err := event.CheckoutSession()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "malformed event payload", nil)
		return
	}

	if err := h.Service.HandleCheckoutCompleted(c.Request.Context(), session); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("event_id", event.ID).Error("webhook reconciliation failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "reconciliation failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "received", nil)
}
