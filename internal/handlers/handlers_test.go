package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandag122/WeeVora/internal/auth"
	"github.com/mandag122/WeeVora/internal/catalog"
	"github.com/mandag122/WeeVora/internal/fixture"
	"github.com/mandag122/WeeVora/internal/models"
	"github.com/mandag122/WeeVora/internal/planner"
)

const campsYAML = `
tables:
  Camps:
    - id: recOpen
      fields:
        Camp Name: Open Camp
        Age Group: "4-12"
        Interests: [Arts]
        Location City: Evanston
        Registration Opens: "2026-01-15"
        Registration Closes: "2026-05-01"
    - id: recFuture
      fields:
        Camp Name: Future Camp
        Interests: [Sports]
        Location City: Skokie
        Registration Opens: "2026-04-01"
    - id: recWaitlist
      fields:
        Camp Name: Waitlist Camp
        Interests: [Arts]
        Registration Opens: "2026-01-01"
        Waitlist Only: true
    - id: recHidden
      fields:
        Camp Name: Hidden Camp
        hide: true
  Registration_Options:
    - id: opt1
      fields:
        option_name: Week 1,Week 2
        dates_csv: 06/01/2026-06/05/2026,06/08/2026-06/12/2026
        price: 100,100
        registration_opens: "2026-01-15"
        Camps: [recWaitlist]
`

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, opts ...func(*Deps)) *gin.Engine {
	t.Helper()
	store, err := fixture.Parse([]byte(campsYAML))
	require.NoError(t, err)

	d := Deps{
		Catalog:        catalog.New(store, nil),
		Planner:        planner.New(planner.NewMemoryStore(), 2026, nil),
		JWT:            auth.NewJWTService("test-secret", "weevora", time.Hour),
		AllowedOrigins: []string{"https://weevora.com"},
		Version:        "test",
		RecordStore:    "fixture",
		Now:            func() time.Time { return testNow },
	}
	for _, opt := range opts {
		opt(&d)
	}
	return NewRouter(d)
}

func do(r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func campIDs(camps []models.Camp) []string {
	ids := make([]string, len(camps))
	for i, c := range camps {
		ids[i] = c.ID
	}
	return ids
}

func TestListCampsSourceOrder(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camps", "")
	require.Equal(t, http.StatusOK, w.Code)
	camps := decode[[]models.Camp](t, w)
	assert.Equal(t, []string{"recOpen", "recFuture", "recWaitlist"}, campIDs(camps))
	assert.Equal(t, "open-camp", camps[0].Slug)
	assert.Equal(t, 4, *camps[0].AgeMin)
	assert.Equal(t, 12, *camps[0].AgeMax)
	assert.True(t, camps[2].HasRegistrationDetail)
}

func TestListCampsOpenFilter(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camps?status=open", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"recOpen"}, campIDs(decode[[]models.Camp](t, w)))

	w = do(r, http.MethodGet, "/api/camps?status=upcoming", "")
	assert.Equal(t, []string{"recFuture"}, campIDs(decode[[]models.Camp](t, w)))
}

func TestListCampsFiltersAndSort(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camps?category=Arts,Music&sort=name-asc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"recWaitlist", "recOpen"}, campIDs(decode[[]models.Camp](t, w)))

	w = do(r, http.MethodGet, "/api/camps?location=Skokie&location=Evanston&sort=name-desc", "")
	assert.Equal(t, []string{"recFuture", "recOpen"}, campIDs(decode[[]models.Camp](t, w)))

	w = do(r, http.MethodGet, "/api/camps?status=someday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCampsNotConfigured(t *testing.T) {
	r := newTestRouter(t, func(d *Deps) { d.Catalog = catalog.New(nil, nil) })

	w := do(r, http.MethodGet, "/api/camps", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "error")
}

func TestListCampsRegistrationStatus(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camps", "")
	require.Equal(t, http.StatusOK, w.Code)

	status := map[string]string{}
	for _, c := range decode[[]CampResponse](t, w) {
		status[c.ID] = c.RegistrationStatus
	}
	assert.Equal(t, map[string]string{
		"recOpen":     models.StatusOpen,
		"recFuture":   models.StatusUpcoming,
		"recWaitlist": models.StatusWaitlist,
	}, status)
}

func TestGetCampBySlug(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camps/future-camp", "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[CampResponse](t, w)
	assert.Equal(t, "recFuture", detail.ID)
	assert.Equal(t, models.StatusUpcoming, detail.RegistrationStatus)

	w = do(r, http.MethodGet, "/api/camp?slug=future-camp", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/camps/unknown-slug", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Camp not found"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/camps/hidden-camp", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/camp", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCampSessions(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camps/waitlist-camp/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decode[[]SessionResponse](t, w)
	require.Len(t, sessions, 2)
	assert.Equal(t, "opt1-0", sessions[0].ID)
	assert.Equal(t, "2026-06-08", *sessions[1].StartDate)
	assert.Equal(t, 100.0, *sessions[1].Price)
	assert.Equal(t, models.StatusOpen, sessions[0].RegistrationStatus)

	w = do(r, http.MethodGet, "/api/camp/sessions?slug=open-camp", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetSimilarCamps(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camps/open-camp/similar", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"recFuture", "recWaitlist"}, campIDs(decode[[]models.Camp](t, w)))

	w = do(r, http.MethodGet, "/api/camp/similar?slug=open-camp&limit=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Camp](t, w), 1)
}

func TestCampIDsAndLocations(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/camp-ids-with-option-name", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["recWaitlist"]`, w.Body.String())

	w = do(r, http.MethodGet, "/api/locations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Evanston","Skokie"]`, w.Body.String())
}

func TestMethodNotAllowedAndNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/camps", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "error")

	w = do(r, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndVersion(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, w)["status"])

	w = do(r, http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", decode[map[string]any](t, w)["version"])
}

func TestSubmitContact(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/contact", `{"name":"Pat","email":"pat@example.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Message received"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/contact", `{"name":"Pat","email":"not-an-email","message":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/contact", `{"name":"  ","email":"pat@example.com","message":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitFeedback(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/feedback", `{"email":"pat@example.com","message":"Love it","relatedCampId":"recOpen"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode[map[string]models.Record](t, w)
	assert.Equal(t, []any{"recOpen"}, body["record"].Fields["Related Camp"])

	w = do(r, http.MethodPost, "/api/feedback", `{"name":"bot","message":"spam","website":"http://spam"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/feedback", `{"message":"anonymous"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/feedback", `["not","an","object"]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/feedback", `{"name":"Pat","message":"hi"}`, "Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/feedback", `{"name":"Pat","message":"hi"}`, "Origin", "https://weevora.com")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPlannerFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/planner", "")
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[CreatePlannerResponse](t, w)
	require.NotEmpty(t, created.Token)
	assert.Equal(t, "2026-06-01", created.Planner.DateRange.Start)
	bearer := []string{"Authorization", "Bearer " + created.Token}

	w = do(r, http.MethodGet, "/api/planner", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	week1 := `{"campId":"recWaitlist","campName":"Waitlist Camp","sessionId":"opt1-0","sessionName":"Week 1","startDate":"2026-06-01","endDate":"2026-06-05","price":100}`
	ext := `{"campId":"recWaitlist","sessionId":"opt1-0-ext","startDate":"2026-06-05","endDate":"2026-06-05","isExtended":true}`

	w = do(r, http.MethodPost, "/api/planner/sessions", week1, bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[ToggleResponse](t, w).Added)

	w = do(r, http.MethodPost, "/api/planner/sessions", ext, bearer...)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/planner", "", bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.PlannerResponse](t, w)
	assert.Len(t, view.Sessions, 2)
	assert.True(t, view.HasOverlap)

	w = do(r, http.MethodGet, "/api/planner/calendar?month=2026-06", "", bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	grid := decode[struct {
		Month string               `json:"month"`
		Days  []models.CalendarDay `json:"days"`
	}](t, w)
	assert.Len(t, grid.Days, 30)
	assert.Len(t, grid.Days[4].Sessions, 2)

	w = do(r, http.MethodGet, "/api/planner/calendar?month=June", "", bearer...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/planner/months", "", bearer...)
	assert.JSONEq(t, `["2026-06","2026-07","2026-08"]`, w.Body.String())

	w = do(r, http.MethodGet, "/api/planner/export.ics", "", bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Equal(t, 2, strings.Count(w.Body.String(), "BEGIN:VEVENT"))

	w = do(r, http.MethodDelete, "/api/planner/sessions/opt1-0", "", bearer...)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodDelete, "/api/planner/sessions/opt1-0?confirm=true", "", bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.PlannerResponse](t, w).Sessions, 1)

	w = do(r, http.MethodPut, "/api/planner/range", `{"start":"2026-08-01","end":"2026-07-01"}`, bearer...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/planner/range", `{"start":"2026-07-01","end":"2026-07-31"}`, bearer...)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/planner/sessions", "", bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := decode[models.PlannerResponse](t, w)
	assert.Empty(t, cleared.Sessions)
	assert.Equal(t, "2026-07-01", cleared.DateRange.Start)
}
