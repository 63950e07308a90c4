package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/service"
)

func metricsEngine(t *testing.T, h *MetricsHandler) *gin.Engine {
	return newTestEngine(t, nil, func(r *gin.Engine) {
		r.GET("/health", h.Health)
		r.GET("/ready", h.Ready)
		r.GET("/metrics", h.Prometheus)
		r.GET("/metrics/ringkasan", h.Snapshot)
	})
}

func TestMetricsHandlerReady(t *testing.T) {
	h := NewMetricsHandler(nil, map[string]ReadinessCheck{
		"redis":    func(ctx context.Context) error { return nil },
		"postgres": func(ctx context.Context) error { return errors.New("connection refused") },
	})
	r := metricsEngine(t, h)

	w := doHTML(r, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["redis"])
	assert.Equal(t, "connection refused", body.Checks["postgres"])
}

func TestMetricsHandlerReadyWithoutChecks(t *testing.T) {
	r := metricsEngine(t, NewMetricsHandler(nil, nil))

	assert.Equal(t, http.StatusOK, doHTML(r, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, doHTML(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doHTML(r, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(r, http.MethodGet, "/metrics/ringkasan", "").Code)
}

func TestMetricsHandlerSnapshot(t *testing.T) {
	metrics := service.NewMetricsService()
	r := metricsEngine(t, NewMetricsHandler(metrics, nil))

	w := doJSON(r, http.MethodGet, "/metrics/ringkasan", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeEnvelope(t, w).Data)

	w = doHTML(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}
