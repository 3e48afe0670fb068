package auth

import (
	"errors"
	"net/http"
	"time"

	"social-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RefreshTokenHeader carries the opaque refresh token on refresh and logout
// requests, and the rotated replacement on responses.
const RefreshTokenHeader = "Refresh-Token"

// RequireAccessToken verifies an access token and injects identity into the
// request context. It does not perform permission checks; those belong to
// internal/rbac.
func RequireAccessToken(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := s.IdentityFromHeader(c.GetHeader(authorizationHeader), time.Now())
		if err != nil {
			if errors.Is(err, ErrMalformedIdentity) {
				// Validated token without a usable subject: issuance bug.
				logger.FromGin(c).Error("access token carried malformed identity")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))

		// Also store on gin context for handler convenience.
		c.Set("user_id", id.UserID.String())

		c.Next()
	}
}
