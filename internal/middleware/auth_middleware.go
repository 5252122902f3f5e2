package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/app/auth"
	"github.com/yigit/unicatalog/internal/pkg/logger"
)

// Legacy clients send their credential in this header instead of
// Authorization.
const CSRFTokenHeader = "csrf-token"

// AuthMiddleware guards mutating routes behind capabilities
type AuthMiddleware struct {
	authz *auth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authz *auth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{authz: authz}
}

// Can aborts with 403 and an empty body unless the request carries a
// token granting capability.
func (m *AuthMiddleware) Can(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader(CSRFTokenHeader)
		if credential == "" {
			credential = c.GetHeader("Authorization")
		}

		if err := m.authz.Authorize(credential, capability); err != nil {
			logger.Debug().Err(err).
				Str("capability", capability).
				Str("path", c.Request.URL.Path).
				Msg("Request denied")
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
