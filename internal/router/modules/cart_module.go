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

// CartModule wires the shopping-cart routes. Carts are customer-only.
type CartModule struct {
	Handler *handlers.CartHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewCartModule(h *handlers.CartHandler, users repo.UserRepository, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	cart := rg.Group("/")
	cart.Use(middleware.Auth(m.Users, m.JWT), middleware.RequireRoles(entity.RoleUser))
	cart.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		cart.GET("/cart", m.Handler.Get)
		cart.POST("/cart", m.Handler.AddItem)
		cart.DELETE("/cart", m.Handler.Clear)
		cart.PUT("/cart/apply-coupon", m.Handler.ApplyCoupon)
		cart.PUT("/cart/items/:itemId", m.Handler.UpdateItem)
		cart.DELETE("/cart/items/:itemId", m.Handler.RemoveItem)
	}
}
