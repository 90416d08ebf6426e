package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/catalog"
)

// catalogError answers a failed catalog call. Missing credentials are a
// configuration error; anything else is reported with the action that failed.
func catalogError(c *gin.Context, log *zap.Logger, err error, action string) {
	if errors.Is(err, catalog.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Server configuration error",
			"message": "Record store credentials are not configured",
		})
		return
	}
	log.Error(action, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}
