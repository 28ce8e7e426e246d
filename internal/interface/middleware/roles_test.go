package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

func performWithRole(t *testing.T, role entity.Role, allowed ...entity.Role) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			c.Set(userCtxKey, &entity.User{ID: "u1", Role: role})
			c.Next()
		},
		RequireRoles(allowed...),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoles_AllowsMember(t *testing.T) {
	w := performWithRole(t, entity.RoleManager, entity.RoleAdmin, entity.RoleManager)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles_RejectsNonMember(t *testing.T) {
	w := performWithRole(t, entity.RoleUser, entity.RoleAdmin, entity.RoleManager)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoles_RejectsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/guarded", RequireRoles(entity.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
