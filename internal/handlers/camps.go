package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/browse"
	"github.com/mandag122/WeeVora/internal/catalog"
	"github.com/mandag122/WeeVora/internal/middleware"
	"github.com/mandag122/WeeVora/internal/models"
)

// SessionResponse is a session with its registration bucket
type SessionResponse struct {
	models.Session
	RegistrationStatus string `json:"registrationStatus"`
}

// CampResponse is a camp with its registration bucket
type CampResponse struct {
	models.Camp
	RegistrationStatus string `json:"registrationStatus"`
}

func campResponses(camps []models.Camp, now time.Time) []CampResponse {
	resp := make([]CampResponse, 0, len(camps))
	for _, camp := range camps {
		resp = append(resp, CampResponse{Camp: camp, RegistrationStatus: browse.CampStatus(camp, now)})
	}
	return resp
}

// ListCamps returns all visible camps in source order. Filter parameters
// narrow the list; a sort parameter reorders it.
func ListCamps(svc *catalog.Service, log *zap.Logger, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.CampListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "message": err.Error()})
			return
		}
		q.Categories = splitValues(q.Categories)
		q.Locations = splitValues(q.Locations)
		q.CampSchedule = splitValues(q.CampSchedule)

		camps, err := svc.ListCamps(c.Request.Context())
		if err != nil {
			catalogError(c, log, err, "fetch camps")
			return
		}

		t := now()
		camps = browse.Filter(camps, q.FilterState, t)
		if q.Sort != "" {
			camps = browse.Sort(camps, q.Sort)
		}
		c.JSON(http.StatusOK, campResponses(camps, t))
	}
}

// GetCamp returns the camp resolved by middleware.LoadCamp
func GetCamp(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		camp, ok := middleware.GetCamp(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Camp not found"})
			return
		}
		c.JSON(http.StatusOK, CampResponse{Camp: camp, RegistrationStatus: browse.CampStatus(camp, now())})
	}
}

// GetCampSessions returns the registration options of the loaded camp
func GetCampSessions(svc *catalog.Service, log *zap.Logger, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		camp, ok := middleware.GetCamp(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Camp not found"})
			return
		}

		sessions, err := svc.GetSessionsForCamp(c.Request.Context(), camp.ID)
		if err != nil {
			catalogError(c, log, err, "fetch sessions")
			return
		}

		t := now()
		resp := make([]SessionResponse, 0, len(sessions))
		for _, s := range sessions {
			resp = append(resp, SessionResponse{
				Session:            s,
				RegistrationStatus: browse.RegistrationStatus(s.RegistrationOpens, s.RegistrationCloses, s.WaitlistOnly, t),
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetSimilarCamps returns camps related to the loaded camp
func GetSimilarCamps(svc *catalog.Service, log *zap.Logger, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		camp, ok := middleware.GetCamp(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Camp not found"})
			return
		}

		limit := catalog.DefaultSimilarLimit
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}

		similar, err := svc.GetSimilarCamps(c.Request.Context(), camp, catalog.ClampLimit(limit))
		if err != nil {
			catalogError(c, log, err, "fetch similar camps")
			return
		}
		c.JSON(http.StatusOK, campResponses(similar, now()))
	}
}

// CampIDsWithOptionName lists camp ids that have named registration options
func CampIDsWithOptionName(svc *catalog.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := svc.CampIDsWithRegistrationDetail(c.Request.Context())
		if err != nil {
			catalogError(c, log, err, "fetch camp ids")
			return
		}
		c.JSON(http.StatusOK, ids)
	}
}

// ListLocations returns the distinct camp cities
func ListLocations(svc *catalog.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		camps, err := svc.ListCamps(c.Request.Context())
		if err != nil {
			catalogError(c, log, err, "fetch locations")
			return
		}
		c.JSON(http.StatusOK, browse.Locations(camps))
	}
}

// splitValues accepts both repeated parameters and comma-joined values
func splitValues(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
