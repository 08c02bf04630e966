package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-tracker/internal/core/services"
)

// Wednesday
var fixedNow = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

type testEnv struct {
	router      *gin.Engine
	habits      *repository.InMemoryHabitRepository
	completions *repository.InMemoryCompletionRepository
}

// fakeAuth trusts the X-User-ID header so handlers can be tested without tokens.
func fakeAuth(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(middleware.ContextUserIDKey, userID)
	c.Next()
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	habitRepo := repository.NewInMemoryHabitRepository()
	completionRepo := repository.NewInMemoryCompletionRepository()
	settingsRepo := repository.NewInMemorySettingsRepository()

	settingsSvc := services.NewSettingsService(settingsRepo)
	statsSvc := services.NewStatsService(habitRepo, completionRepo, settingsSvc).
		WithClock(func() time.Time { return fixedNow })

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(fakeAuth)

	adapterHTTP.NewHabitHandler(services.NewHabitService(habitRepo)).RegisterRoutes(api)
	adapterHTTP.NewCompletionHandler(services.NewCompletionService(completionRepo, habitRepo)).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(statsSvc).RegisterRoutes(api)
	adapterHTTP.NewSettingsHandler(settingsSvc).RegisterRoutes(api)

	return &testEnv{router: r, habits: habitRepo, completions: completionRepo}
}

// encodeBody sends strings verbatim and JSON-encodes anything else.
func encodeBody(body any) *bytes.Buffer {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	return &buf
}

func (e *testEnv) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, encodeBody(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type apiError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

type habitJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Archived  bool   `json:"archived"`
	SortOrder int    `json:"sort_order"`
}

func (e *testEnv) createHabit(t *testing.T, userID, name string) habitJSON {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/habits", userID, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[habitJSON](t, w)
}

func (e *testEnv) complete(t *testing.T, userID, habitID, day string) {
	t.Helper()
	w := e.do(http.MethodPut, "/api/v1/completions", userID, map[string]any{
		"habit_id": habitID, "day": day, "completed": true,
	})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
