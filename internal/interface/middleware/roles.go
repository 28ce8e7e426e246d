package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/pkg/response"
)

// RequireRoles rejects the request unless the authenticated user's role is
// in the given set. Must run after Auth.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		if !u.Role.In(roles...) {
			response.AbortError(c, http.StatusForbidden, "you are not allowed to perform this action", nil)
			return
		}
		c.Next()
	}
}
