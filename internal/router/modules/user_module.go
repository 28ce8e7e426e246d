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

// UserModule wires the self-service profile routes and the admin account
// management routes.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.PUT("/users/me", m.Handler.UpdateMe)
		auth.PUT("/users/me/password", m.Handler.ChangeMyPassword)
		auth.DELETE("/users/me", m.Handler.DeleteMe)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.Users, m.JWT), middleware.RequireRoles(entity.RoleAdmin))
	{
		admin.GET("/users", m.Handler.List)
		admin.POST("/users", m.Handler.Create)
		admin.GET("/users/:id", m.Handler.Get)
		admin.PUT("/users/:id", m.Handler.Update)
		admin.PUT("/users/:id/password", m.Handler.SetPassword)
		admin.DELETE("/users/:id", m.Handler.Delete)
		admin.PUT("/users/:id/activate", m.Handler.Activate)
	}
}
