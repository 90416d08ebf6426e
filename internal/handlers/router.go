package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/auth"
	"github.com/mandag122/WeeVora/internal/catalog"
	"github.com/mandag122/WeeVora/internal/middleware"
	"github.com/mandag122/WeeVora/internal/planner"
)

// Deps are the services behind the router
type Deps struct {
	Catalog        *catalog.Service
	Planner        *planner.Planner
	JWT            *auth.JWTService
	DB             HealthChecker
	AllowedOrigins []string
	Version        string
	RecordStore    string
	Log            *zap.Logger
	Now            func() time.Time
}

// NewRouter wires every route
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	registerValidators(d.Log)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.GET("/health", Health(d.Version, d.RecordStore, d.DB))

	api := r.Group("/api")
	api.GET("/version", Version(d.Version))

	loadCamp := middleware.LoadCamp(d.Catalog, d.Log)
	api.GET("/camps", ListCamps(d.Catalog, d.Log, d.Now))
	api.GET("/camps/:slug", loadCamp, GetCamp(d.Now))
	api.GET("/camps/:slug/sessions", loadCamp, GetCampSessions(d.Catalog, d.Log, d.Now))
	api.GET("/camps/:slug/similar", loadCamp, GetSimilarCamps(d.Catalog, d.Log, d.Now))

	// Query-parameter variants used by older clients
	api.GET("/camp", loadCamp, GetCamp(d.Now))
	api.GET("/camp/sessions", loadCamp, GetCampSessions(d.Catalog, d.Log, d.Now))
	api.GET("/camp/similar", loadCamp, GetSimilarCamps(d.Catalog, d.Log, d.Now))

	api.GET("/camp-ids-with-option-name", CampIDsWithOptionName(d.Catalog, d.Log))
	api.GET("/locations", ListLocations(d.Catalog, d.Log))

	api.POST("/contact", SubmitContact(d.Catalog, d.Log))
	api.POST("/feedback", middleware.AllowOrigins(d.AllowedOrigins), SubmitFeedback(d.Catalog, d.Log))

	if d.Planner != nil && d.JWT != nil {
		api.POST("/planner", CreatePlanner(d.Planner, d.JWT, d.Log))

		p := api.Group("/planner", middleware.RequirePlanner(d.JWT))
		p.GET("", GetPlanner(d.Planner, d.Log))
		p.PUT("/range", SetPlannerRange(d.Planner, d.Log))
		p.POST("/sessions", TogglePlannerSession(d.Planner, d.Log))
		p.DELETE("/sessions", ClearPlannerSessions(d.Planner, d.Log))
		p.DELETE("/sessions/:sessionId", RemovePlannerSession(d.Planner, d.Log))
		p.GET("/calendar", PlannerCalendar(d.Planner, d.Log))
		p.GET("/months", PlannerMonths(d.Planner, d.Log))
		p.GET("/export.ics", ExportPlannerICS(d.Planner, d.Log))
	}

	return r
}
