package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The upstream gateway authenticates users and forwards the resulting
// identity in these headers. This service trusts them as-is; it performs no
// authentication of its own.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

const (
	userIDKey   = contextKey("userID")
	userNameKey = contextKey("userName")
	userRoleKey = contextKey("userRole")
)

// IdentityMiddleware copies the gateway-supplied identity headers into the
// request context and rejects requests that carry no user at all.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, userIDKey, userID)
		ctx = context.WithValue(ctx, userNameKey, c.GetHeader(HeaderUserName))
		ctx = context.WithValue(ctx, userRoleKey, c.GetHeader(HeaderUserRole))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route group on the gateway-supplied role string.
// The booking engine itself performs no authorization; this is the caller-side
// precondition.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromCtx(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Missing user role"})
			return
		}
		if _, ok := allowed[role]; !ok {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted for route", "role", role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// GetUserIDFromCtx retrieves the acting user's ID from the request context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromCtx retrieves the acting user's role from the request context.
func GetUserRoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}
