package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/auth"
	"github.com/mandag122/WeeVora/internal/catalog"
	"github.com/mandag122/WeeVora/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequirePlanner(t *testing.T) {
	jwtService := auth.NewJWTService("secret", "weevora", time.Hour)
	token, err := jwtService.GenerateToken("p1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/planner", RequirePlanner(jwtService), func(c *gin.Context) {
		id, ok := GetPlannerID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/planner", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "p1", w.Body.String())
			}
		})
	}
}

type finderFunc func(ctx context.Context, slug string) (models.Camp, error)

func (f finderFunc) GetCampBySlug(ctx context.Context, slug string) (models.Camp, error) {
	return f(ctx, slug)
}

func TestLoadCamp(t *testing.T) {
	finder := finderFunc(func(ctx context.Context, slug string) (models.Camp, error) {
		switch slug {
		case "camp-fun":
			return models.Camp{ID: "rec1", Slug: slug}, nil
		case "broken":
			return models.Camp{}, catalog.ErrNotConfigured
		}
		return models.Camp{}, catalog.ErrCampNotFound
	})

	r := gin.New()
	handler := func(c *gin.Context) {
		camp, ok := GetCamp(c)
		require.True(t, ok)
		c.String(http.StatusOK, camp.ID)
	}
	r.GET("/camps/:slug", LoadCamp(finder, zap.NewNop()), handler)
	r.GET("/camp", LoadCamp(finder, zap.NewNop()), handler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/camps/camp-fun", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rec1", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/camp?slug=camp-fun", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/camps/unknown-slug", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Camp not found"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/camp", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing slug"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/camps/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAllowOrigins(t *testing.T) {
	r := gin.New()
	r.POST("/open", AllowOrigins(nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/guarded", AllowOrigins([]string{"https://weevora.com"}), func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func(path, origin string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusOK, post("/open", "https://evil.example"))
	assert.Equal(t, http.StatusOK, post("/guarded", ""))
	assert.Equal(t, http.StatusOK, post("/guarded", "https://weevora.com"))
	assert.Equal(t, http.StatusForbidden, post("/guarded", "https://evil.example"))
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = serve(r, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
