// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a JSON error envelope
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithDomainError additionally carries a machine-readable code so
// callers can distinguish domain rejections from system failures
func RespondWithDomainError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}
