package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/catalog"
	"github.com/mandag122/WeeVora/internal/models"
)

// SubmitContact forwards a contact form message to the feedback table
func SubmitContact(svc *catalog.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing required fields: name, email, and message are required.",
				"message": err.Error(),
			})
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, email, and message are required."})
			return
		}

		if err := svc.SubmitContact(c.Request.Context(), req); err != nil {
			if errors.Is(err, catalog.ErrNotConfigured) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error. Please try again later."})
				return
			}
			log.Error("contact submit failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message. Please try again later."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message received"})
	}
}

// SubmitFeedback stores a feedback entry. A filled honeypot field gets a
// success answer without anything being written.
func SubmitFeedback(svc *catalog.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be a JSON object.", "message": err.Error()})
			return
		}

		if strings.TrimSpace(req.Website) != "" {
			log.Info("feedback honeypot triggered", zap.String("client_ip", c.ClientIP()))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		rec, err := svc.SubmitFeedback(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrInvalidSubmission):
				c.JSON(http.StatusBadRequest, gin.H{"error": `Provide "message" and at least one of "email" or "name".`})
			case errors.Is(err, catalog.ErrNotConfigured):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			default:
				log.Error("feedback submit failed", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save feedback", "message": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"record": rec})
	}
}
