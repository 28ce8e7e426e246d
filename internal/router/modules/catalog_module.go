package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/container"
	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
	handlers "github.com/gocommerce/shop-api/internal/interface/http"
	"github.com/gocommerce/shop-api/internal/interface/middleware"
	"github.com/gocommerce/shop-api/pkg/helpers"
)

// CatalogModule wires the product catalog and its reviews. Browsing is
// public; catalog writes are staff-only and reviews belong to customers.
type CatalogModule struct {
	Products *handlers.ProductHandler
	Reviews  *handlers.ReviewHandler
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
}

func NewCatalogModule(products *handlers.ProductHandler, reviews *handlers.ReviewHandler, users repo.UserRepository, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Products: products, Reviews: reviews, Users: users, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/products", browseLimiter, m.Products.List)
	rg.GET("/products/search", browseLimiter, m.Products.Search)
	rg.GET("/products/:id", browseLimiter, m.Products.Get)
	rg.GET("/products/:id/reviews", browseLimiter, m.Reviews.ListByProduct)

	staff := rg.Group("/")
	staff.Use(middleware.Auth(m.Users, m.JWT), middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager))
	{
		staff.POST("/products", m.Products.Create)
		staff.PUT("/products/:id", m.Products.Update)
		staff.DELETE("/products/:id", m.Products.Delete)
	}

	customer := rg.Group("/")
	customer.Use(middleware.Auth(m.Users, m.JWT))
	{
		customer.POST("/products/:id/reviews", middleware.RequireRoles(entity.RoleUser), m.Reviews.Create)
		customer.DELETE("/reviews/:id", m.Reviews.Delete)
	}
}
