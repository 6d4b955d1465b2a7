package handlers

import (
	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body shared by every handler
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":   code,
		"message": message,
	})
}
