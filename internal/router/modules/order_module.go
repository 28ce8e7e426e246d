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

// OrderModule wires checkout, the order ledger and the payment webhook.
// The webhook stays outside the auth group: the provider authenticates
// with its signature, not a bearer token.
type OrderModule struct {
	Handler *handlers.OrderHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, users repo.UserRepository, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, Users: users, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	rg.POST("/webhook/checkout", m.Handler.Webhook)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/orders", m.Handler.List)
		auth.GET("/orders/:id", m.Handler.Get)

		auth.POST("/orders/:cartId", middleware.RequireRoles(entity.RoleUser), m.Handler.CreateCashOrder)
		auth.POST("/orders/checkout-session/:cartId", middleware.RequireRoles(entity.RoleUser), m.Handler.CheckoutSession)

		auth.PUT("/orders/:id/pay", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), m.Handler.MarkPaid)
		auth.PUT("/orders/:id/deliver", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), m.Handler.MarkDelivered)
	}
}
