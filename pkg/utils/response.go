package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse writes a JSON error body with the given status. Every
// user-visible failure goes through here so error bodies stay uniform.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// MessageResponse writes a plain acknowledgement body.
func MessageResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
