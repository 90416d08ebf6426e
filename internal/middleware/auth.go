package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mandag122/WeeVora/internal/auth"
)

const plannerIDKey = "planner_id"

// RequirePlanner validates the planner bearer token and sets the planner id
func RequirePlanner(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Use: Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(plannerIDKey, claims.PlannerID)
		c.Next()
	}
}

// GetPlannerID retrieves the authenticated planner id from context
func GetPlannerID(c *gin.Context) (string, bool) {
	val, exists := c.Get(plannerIDKey)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
