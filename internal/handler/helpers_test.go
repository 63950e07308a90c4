package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/middleware"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type flashStub struct {
	mu       sync.Mutex
	messages map[string]string
}

func (f *flashStub) SetFlash(ctx context.Context, sessionID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messages == nil {
		f.messages = map[string]string{}
	}
	f.messages[sessionID] = message
	return nil
}

func (f *flashStub) PopFlash(ctx context.Context, sessionID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := f.messages[sessionID]
	delete(f.messages, sessionID)
	return msg
}

func (f *flashStub) last(sessionID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[sessionID]
}

func sessionFor(role string) *models.Session {
	return &models.Session{
		ID:    "session-1",
		Token: "backend-token",
		User:  &models.User{ID: "u-1", Name: "Rina", Email: "rina@example.com", Role: role, SchoolID: "sch-1"},
	}
}

// newTestEngine mounts routes behind a middleware that injects session.
func newTestEngine(t *testing.T, session *models.Session, mount func(r *gin.Engine)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, view.Install(r))
	r.Use(middleware.WithResponseMeta())
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, session)
		c.Next()
	})
	mount(r)
	return r
}

func doJSON(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Accept", "application/json")
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doHTML(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
