package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "stockmaster/internal/core/context"
)

func permissionRouter(permission string, user *appctx.UserContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if user != nil {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(appctx.WithUser(c.Request.Context(), user))
			c.Next()
		})
	}
	router.Use(ErrorHandler())

	router.POST("/x", RequirePermission(permission), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/x", RequirePermission(permission), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, "/x", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequirePermission_NoUser(t *testing.T) {
	router := permissionRouter("document:receipt:validate", nil)
	rec := doRequest(t, router, http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission_ReadOpenToAuthenticated(t *testing.T) {
	viewer := &appctx.UserContext{UserID: "u1", Roles: []string{RoleViewer}}
	router := permissionRouter("register:stock:read", viewer)
	rec := doRequest(t, router, http.MethodGet)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequirePermission_WriteActions(t *testing.T) {
	tests := []struct {
		name       string
		permission string
		user       *appctx.UserContext
		wantCode   int
	}{
		{
			name:       "operator can validate",
			permission: "document:receipt:validate",
			user:       &appctx.UserContext{UserID: "u1", Roles: []string{RoleOperator}},
			wantCode:   http.StatusNoContent,
		},
		{
			name:       "viewer cannot validate",
			permission: "document:receipt:validate",
			user:       &appctx.UserContext{UserID: "u2", Roles: []string{RoleViewer}},
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "operator cannot delete",
			permission: "document:receipt:delete",
			user:       &appctx.UserContext{UserID: "u3", Roles: []string{RoleOperator}},
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "admin role list allows delete",
			permission: "document:receipt:delete",
			user:       &appctx.UserContext{UserID: "u4", Roles: []string{RoleAdmin}},
			wantCode:   http.StatusNoContent,
		},
		{
			name:       "admin flag bypasses role check",
			permission: "register:stock:recalculate",
			user:       &appctx.UserContext{UserID: "u5", IsAdmin: true},
			wantCode:   http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := permissionRouter(tt.permission, tt.user)
			rec := doRequest(t, router, http.MethodPost)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
