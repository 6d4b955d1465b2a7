package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker pings the backing database
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheck godoc
//
//	@Summary		Health check
//	@Description	Reports whether the database answers within two seconds
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	object{status=string,database=string}
//	@Failure		503	{object}	object{status=string,database=string}
//	@Router			/health [get]
func HealthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		switch err := db.Health(ctx); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}
