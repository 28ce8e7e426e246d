package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/interface/middleware"
	"github.com/gocommerce/shop-api/pkg/response"
	"github.com/gocommerce/shop-api/pkg/validation"
)

type ReviewHandler struct {
	Service *application.ReviewService
}

func NewReviewHandler(service *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: service}
}

type createReviewRequest struct {
	Title   string `json:"title" binding:"omitempty,max=200"`
	Ratings int    `json:"ratings" binding:"required,rating"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Service.Create(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Title, req.Ratings)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toReviewView(rv), "review created", nil)
}

func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	reviews, err := h.Service.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewViews(reviews), "reviews", nil)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "review deleted", nil)
}
