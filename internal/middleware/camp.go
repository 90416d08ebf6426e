package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/catalog"
	"github.com/mandag122/WeeVora/internal/models"
)

const campKey = "camp"

// CampFinder resolves a camp by slug
type CampFinder interface {
	GetCampBySlug(ctx context.Context, slug string) (models.Camp, error)
}

// CampSlug reads the slug from the :slug path parameter or the slug query
// parameter
func CampSlug(c *gin.Context) string {
	if slug := strings.TrimSpace(c.Param("slug")); slug != "" {
		return slug
	}
	return strings.TrimSpace(c.Query("slug"))
}

// LoadCamp resolves the request's camp and stores it in context
func LoadCamp(finder CampFinder, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := CampSlug(c)
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug"})
			c.Abort()
			return
		}

		camp, err := finder.GetCampBySlug(c.Request.Context(), slug)
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrCampNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Camp not found"})
			case errors.Is(err, catalog.ErrNotConfigured):
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Server configuration error",
					"message": "Record store credentials are not configured",
				})
			default:
				log.Error("failed to load camp", zap.String("slug", slug), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch camp"})
			}
			c.Abort()
			return
		}

		c.Set(campKey, camp)
		c.Next()
	}
}

// GetCamp retrieves the camp loaded by LoadCamp
func GetCamp(c *gin.Context) (models.Camp, bool) {
	val, exists := c.Get(campKey)
	if !exists {
		return models.Camp{}, false
	}
	camp, ok := val.(models.Camp)
	return camp, ok
}
