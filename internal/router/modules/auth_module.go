package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/container"
	handlers "github.com/gocommerce/shop-api/internal/interface/http"
	"github.com/gocommerce/shop-api/internal/interface/middleware"
)

// AuthModule exposes the public account endpoints: signup, login and the
// password-reset lifecycle.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/auth/verify-reset-code", resetLimiter, m.Handler.VerifyResetCode)
	rg.POST("/auth/reset-password", resetLimiter, m.Handler.ResetPassword)
}
