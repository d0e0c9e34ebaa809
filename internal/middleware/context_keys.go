package middleware

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey = contextKey("userID")
	rolesKey  = contextKey("roles")
)

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetRolesFromContext retrieves the authenticated user's role set carried in
// the access token.
func GetRolesFromContext(c *gin.Context) (domain.RoleSet, bool) {
	if v := c.Request.Context().Value(rolesKey); v != nil {
		if roles, ok := v.(domain.RoleSet); ok {
			return roles, true
		}
	}
	return nil, false
}
