package middleware

import (
	"net/http"
	"strings"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// MetricsAuthMiddleware creates a middleware that protects metrics endpoint with Bearer token
func MetricsAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// No token configured: endpoint is open
		if token == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortMetricsUnauthorized(c, "Bearer token required")
			return
		}

		if !util.SecureCompare(strings.TrimPrefix(authHeader, bearerPrefix), token) {
			abortMetricsUnauthorized(c, "Invalid token")
			return
		}

		c.Next()
	}
}

func abortMetricsUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="Metrics"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}
