package rbac

import (
	"net/http"

	"social-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on a single resolved permission. Use it for
// operations without an ownership dimension (e.g. creating a post); own-vs-any
// decisions on existing entities go through Authorizer.CanModify inside the
// service call.
func RequirePermission(resolver *Resolver, perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.UserID(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		perms, err := resolver.Permissions(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authorization unavailable"})
			return
		}
		if !perms.Has(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
