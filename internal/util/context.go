package util

import (
	"context"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

type contextKey string

const ipContextKey contextKey = "client_ip"

// IPMiddleware extracts client IP and stores it in the context
func IPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Gin's ClientIP() handles X-Forwarded-For and other headers
		c.Set(string(ipContextKey), c.ClientIP())
		c.Request = c.Request.WithContext(SetIPContext(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}

// SetIPContext returns a copy of ctx carrying the client IP. Empty IPs are not stored.
func SetIPContext(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, ipContextKey, ip)
}

// GetIPFromContext extracts the client IP address from the context
func GetIPFromContext(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		return ginCtx.ClientIP()
	}

	if ip, ok := ctx.Value(ipContextKey).(string); ok {
		return ip
	}

	return ""
}

// GetUsernameFromContext extracts the username from the user object in context
func GetUsernameFromContext(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		if userVal, exists := ginCtx.Get("user"); exists {
			if user, ok := userVal.(*models.User); ok {
				return user.Username
			}
		}
	}

	if user := models.GetUserFromContext(ctx); user != nil {
		return user.Username
	}

	return ""
}
