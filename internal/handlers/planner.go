package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/auth"
	"github.com/mandag122/WeeVora/internal/middleware"
	"github.com/mandag122/WeeVora/internal/models"
	"github.com/mandag122/WeeVora/internal/planner"
)

type CreatePlannerResponse struct {
	PlannerID string                 `json:"plannerId"`
	Token     string                 `json:"token"`
	Planner   models.PlannerResponse `json:"planner"`
}

type ToggleResponse struct {
	models.PlannerResponse
	Added bool `json:"added"`
}

// plannerError maps planner errors to responses
func plannerError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, planner.ErrPlannerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Planner not found"})
	case errors.Is(err, planner.ErrSessionNotSelected):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not selected"})
	case errors.Is(err, planner.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Confirmation required",
			"message": "Repeat the request with confirm=true to remove this session",
		})
	case errors.Is(err, planner.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range", "message": "end must not be before start"})
	case errors.Is(err, planner.ErrInvalidSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session", "message": err.Error()})
	default:
		log.Error("planner operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update planner"})
	}
}

func plannerID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetPlannerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Planner not authenticated"})
	}
	return id, ok
}

// CreatePlanner starts an empty planner and returns its bearer token
func CreatePlanner(p *planner.Planner, jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, state, err := p.Create(c.Request.Context())
		if err != nil {
			plannerError(c, log, err)
			return
		}

		token, err := jwtService.GenerateToken(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, CreatePlannerResponse{
			PlannerID: id,
			Token:     token,
			Planner:   planner.Respond(state),
		})
	}
}

// GetPlanner returns the selections, the window and any overlaps
func GetPlanner(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}
		view, err := p.View(c.Request.Context(), id)
		if err != nil {
			plannerError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// SetPlannerRange replaces the visible date window
func SetPlannerRange(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}

		var req models.DateRange
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		state, err := p.SetDateRange(c.Request.Context(), id, req)
		if err != nil {
			plannerError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, planner.Respond(state))
	}
}

// TogglePlannerSession adds a session, or removes it if already selected
func TogglePlannerSession(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}

		var req models.SelectedSession
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		state, added, err := p.Toggle(c.Request.Context(), id, req)
		if err != nil {
			plannerError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, ToggleResponse{PlannerResponse: planner.Respond(state), Added: added})
	}
}

// RemovePlannerSession removes one selection; it needs confirm=true
func RemovePlannerSession(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}

		confirmed := c.Query("confirm") == "true"
		state, err := p.Remove(c.Request.Context(), id, c.Param("sessionId"), confirmed)
		if err != nil {
			plannerError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, planner.Respond(state))
	}
}

// ClearPlannerSessions removes every selection
func ClearPlannerSessions(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}
		state, err := p.Clear(c.Request.Context(), id)
		if err != nil {
			plannerError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, planner.Respond(state))
	}
}

// PlannerMonths lists the months of the planner's window
func PlannerMonths(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}
		months, err := p.Months(c.Request.Context(), id)
		if err != nil {
			plannerError(c, log, err)
			return
		}

		out := make([]string, len(months))
		for i, m := range months {
			out[i] = m.Format("2006-01")
		}
		c.JSON(http.StatusOK, out)
	}
}

// PlannerCalendar returns the day grid of one month (?month=YYYY-MM),
// defaulting to the first month of the window
func PlannerCalendar(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}
		state, err := p.State(c.Request.Context(), id)
		if err != nil {
			plannerError(c, log, err)
			return
		}

		raw := c.Query("month")
		if raw == "" {
			raw = state.DateRange.Start[:len("2006-01")]
		}
		month, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month", "message": "use YYYY-MM"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"month": month.Format("2006-01"),
			"days":  planner.MonthGrid(state.Sessions, month),
		})
	}
}

// ExportPlannerICS downloads the selections as an iCalendar file
func ExportPlannerICS(p *planner.Planner, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := plannerID(c)
		if !ok {
			return
		}
		state, err := p.State(c.Request.Context(), id)
		if err != nil {
			plannerError(c, log, err)
			return
		}

		var buf bytes.Buffer
		if err := planner.WriteICS(&buf, id, state, time.Now()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build calendar"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=camp-planner-%s.ics", id))
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
	}
}
