package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	appctx "stockmaster/internal/core/context"
)

// Well-known roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// rolesForAction maps the action suffix of a permission string
// (e.g. "document:receipt:validate") to the roles allowed to perform it.
// Reads are open to every authenticated user.
func rolesForAction(action string) []string {
	switch action {
	case "read":
		return nil
	case "delete":
		return []string{RoleAdmin}
	default:
		// create, update, validate, cancel, recalculate
		return []string{RoleAdmin, RoleOperator}
	}
}

// RequirePermission checks the user's roles against the permission string.
// Permissions follow the "scope:entity:action" pattern; only the action
// part drives the decision. Admins pass every check.
func RequirePermission(permission string) gin.HandlerFunc {
	idx := strings.LastIndex(permission, ":")
	action := permission
	if idx >= 0 {
		action = permission[idx+1:]
	}
	allowed := rolesForAction(action)

	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if user.IsAdmin || allowed == nil {
			c.Next()
			return
		}

		for _, required := range allowed {
			for _, userRole := range user.Roles {
				if userRole == required {
					c.Next()
					return
				}
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("permission", permission),
		)
		c.Abort()
	}
}
