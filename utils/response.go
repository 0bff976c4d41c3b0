package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONError sends the backend contract's error envelope: a bare {"error": msg}
// body that clients surface verbatim.
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// JSONMessage sends a plain acknowledgement body for operations that return
// no resource (e.g. delete).
func JSONMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
