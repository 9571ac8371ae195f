package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}

// JSONErrorWithPrice sends a structured error response carrying the current
// price, so a rejected bidder knows the amount to beat.
func JSONErrorWithPrice(c *gin.Context, status int, err error, message, currentPrice string) {
	c.JSON(status, gin.H{
		"status":        status,
		"message":       message,
		"error":         err.Error(),
		"current_price": currentPrice,
	})
}
