package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/pkg/response"
	"github.com/gocommerce/shop-api/pkg/validation"
)

type CouponHandler struct {
	Service *application.CouponService
}

func NewCouponHandler(service *application.CouponService) *CouponHandler {
	return &CouponHandler{Service: service}
}

type createCouponRequest struct {
	Name     string    `json:"name" binding:"required,min=2"`
	Discount float64   `json:"discount" binding:"required,gt=0,lte=100"`
	Expire   time.Time `json:"expire" binding:"required"`
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req createCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	coupon, err := h.Service.Create(c.Request.Context(), req.Name, req.Discount, req.Expire)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toCouponView(coupon), "coupon created", nil)
}

func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.Service.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCouponViews(coupons), "coupons", nil)
}

func (h *CouponHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "coupon deleted", nil)
}
