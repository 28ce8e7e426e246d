package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/pkg/response"
	"github.com/gocommerce/shop-api/pkg/validation"
)

type CartHandler struct {
	Service *application.CartService
}

func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{Service: service}
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.Service.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCartView(cart), "cart", nil)
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Color     string `json:"color" binding:"omitempty,max=50"`
	Quantity  int    `json:"quantity" binding:"omitempty,gt=0"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cart, err := h.Service.AddItem(c.Request.Context(), c.GetString("userID"), req.ProductID, req.Color, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCartView(cart), "item added", nil)
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cart, err := h.Service.UpdateItemQuantity(c.Request.Context(), c.GetString("userID"), c.Param("itemId"), req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCartView(cart), "item updated", nil)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.Service.RemoveItem(c.Request.Context(), c.GetString("userID"), c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCartView(cart), "item removed", nil)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.Service.Clear(c.Request.Context(), c.GetString("userID")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "cart cleared", nil)
}

type applyCouponRequest struct {
	Coupon string `json:"coupon" binding:"required"`
}

func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cart, err := h.Service.ApplyCoupon(c.Request.Context(), c.GetString("userID"), req.Coupon)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCartView(cart), "coupon applied", nil)
}
