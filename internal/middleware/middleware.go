package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stockwatch-srv/pkg/response"
	"stockwatch-srv/pkg/scope"
)

// Auth returns a middleware that validates JWT tokens and sets the payload in
// context. The token comes from the Authorization header, or from the "token"
// query parameter for clients that cannot set headers (browser WebSocket API).
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			m.logger.Warnf(c.Request.Context(), "missing token | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			m.logger.Warnf(c.Request.Context(), "token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx := scope.SetPayloadToContext(c.Request.Context(), payload)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminOnly requires an "admin" role in the verified payload. Apply after Auth.
func (m Middleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := scope.GetPayloadFromContext(c.Request.Context())
		if !ok || payload.Role != "admin" {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	const bearerPrefix = "Bearer "
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimSpace(authHeader[len(bearerPrefix):])
	}
	return c.Query("token")
}
