package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
	"github.com/gocommerce/shop-api/pkg/helpers"
	"github.com/gocommerce/shop-api/pkg/response"
)

const userCtxKey = "currentUser"

// Auth validates the bearer token and loads the account behind it.
// The token is rejected when the account no longer exists, is deactivated,
// or changed its password after the token was issued.
// It sets currentUser and userID in the Gin context on success.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.AbortError(c, http.StatusUnauthorized, "user no longer exists", nil)
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "could not load user", nil)
			return
		}
		if !u.Active {
			response.AbortError(c, http.StatusUnauthorized, "account is deactivated", nil)
			return
		}
		if u.PasswordChangedAt != nil && claims.IssuedBefore(*u.PasswordChangedAt) {
			response.AbortError(c, http.StatusUnauthorized, "password changed recently, please log in again", nil)
			return
		}

		c.Set(userCtxKey, u)
		c.Set("userID", u.ID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
