package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamabench/config"
)

func newMux(cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	NewStatusHandler(cfg).Register(mux)
	return mux
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestIndex(t *testing.T) {
	rec := do(t, newMux(config.Defaults()), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/health")
	assert.Contains(t, rec.Body.String(), "/config")
	assert.Contains(t, rec.Body.String(), "Service is running.")
}

func TestHealth(t *testing.T) {
	rec := do(t, newMux(config.Defaults()), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestShowConfig_Defaults(t *testing.T) {
	rec := do(t, newMux(config.Defaults()), http.MethodGet, "/config")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]any{
		"OLLAMA_BASE_URL":     "http://host.docker.internal:11434",
		"RESULTS_CSV":         "/app/results/benchmark.csv",
		"DEFAULT_NUM_CTX":     float64(2048),
		"DEFAULT_NUM_PREDICT": float64(256),
		"DEFAULT_TEMPERATURE": float64(0),
		"GPU_VRAM_GB":         float64(8),
		"MAX_EST_VRAM_UTIL":   0.8,
		"ALLOWED_ORIGINS":     "*",
	}, got)
}

func TestShowConfig_ReflectsValues(t *testing.T) {
	cfg := config.Defaults()
	cfg.GPUVRAMGB = 24
	cfg.AllowedOrigins = "http://a.com"
	cfg.Server.ListenAddress = "10.0.0.1:1"

	rec := do(t, newMux(cfg), http.MethodGet, "/config")

	var got config.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 24, got.GPUVRAMGB)
	assert.Equal(t, "http://a.com", got.AllowedOrigins)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}

func TestRoutes_MethodsAndPaths(t *testing.T) {
	mux := newMux(config.Defaults())

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, mux, http.MethodPost, "/health").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, mux, http.MethodDelete, "/config").Code)
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/missing").Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodHead, "/health").Code)
}

func TestWithLogging_PassesThrough(t *testing.T) {
	h := WithLogging(newMux(config.Defaults()))

	rec := do(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/nope").Code)
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	_, err := rec.Write([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.status)
}
