package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker is a dependency the health endpoint can ping
type HealthChecker interface {
	Health(ctx context.Context) error
	Stats() map[string]interface{}
}

// Health reports service status. db may be nil when planners are not kept
// in Postgres.
func Health(version string, recordStore string, db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"status":       "healthy",
			"version":      version,
			"record_store": recordStore,
		}
		if db == nil {
			c.JSON(http.StatusOK, resp)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Health(ctx); err != nil {
			resp["status"] = "unhealthy"
			resp["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = db.Stats()
		c.JSON(http.StatusOK, resp)
	}
}

// Version reports the build version
func Version(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": version,
			"service": "weevora",
		})
	}
}
