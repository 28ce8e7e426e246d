package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/pkg/response"
	"github.com/gocommerce/shop-api/pkg/validation"
)

type ProductHandler struct {
	Service *application.ProductService
}

func NewProductHandler(service *application.ProductService) *ProductHandler {
	return &ProductHandler{Service: service}
}

type productRequest struct {
	Title              string  `json:"title" binding:"required,min=2"`
	Description        string  `json:"description" binding:"required"`
	Price              float64 `json:"price" binding:"required,gt=0"`
	PriceAfterDiscount float64 `json:"price_after_discount" binding:"omitempty,gt=0,ltfield=Price"`
	ImageCover         string  `json:"image_cover" binding:"omitempty,url"`
	Quantity           int     `json:"quantity" binding:"gte=0"`
}

func (r *productRequest) toInput() application.ProductInput {
	return application.ProductInput{
		Title:              r.Title,
		Description:        r.Description,
		Price:              r.Price,
		PriceAfterDiscount: r.PriceAfterDiscount,
		ImageCover:         r.ImageCover,
		Quantity:           r.Quantity,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toProductView(p), "product created", nil)
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	products, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProductViews(products), "products", nil)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProductView(p), "product", nil)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Service.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProductView(p), "product updated", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "product deleted", nil)
}

// Search runs a full-text query against the search index.
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := intQuery(c, "size")
	hits, err := h.Service.Search(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func intQuery(c *gin.Context, key string) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, false
	}
	var n int
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
