package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
	handlers "github.com/gocommerce/shop-api/internal/interface/http"
	"github.com/gocommerce/shop-api/internal/interface/middleware"
	"github.com/gocommerce/shop-api/pkg/helpers"
)

// CouponModule wires coupon management, a staff-only surface. Customers
// never list coupons; they redeem them through the cart.
type CouponModule struct {
	Handler *handlers.CouponHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewCouponModule(h *handlers.CouponHandler, users repo.UserRepository, jwt *helpers.JWTManager) *CouponModule {
	return &CouponModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CouponModule) Register(rg *gin.RouterGroup) {
	staff := rg.Group("/")
	staff.Use(middleware.Auth(m.Users, m.JWT), middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager))
	{
		staff.POST("/coupons", m.Handler.Create)
		staff.GET("/coupons", m.Handler.List)
		staff.DELETE("/coupons/:id", m.Handler.Delete)
	}
}
