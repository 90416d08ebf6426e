package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowOrigins rejects browser requests from origins outside the list.
// Requests without an Origin header and an empty list pass.
func AllowOrigins(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if len(allowed) == 0 || origin == "" || allowed[origin] {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden origin"})
		c.Abort()
	}
}
