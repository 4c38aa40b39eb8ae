package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ollamabench/config"
)

const indexHTML = "<html><body>" +
	"<h3>Ollama Bench Service</h3>" +
	"<p>Service is running.</p>" +
	"<ul>" +
	"<li><a href=\"/health\">/health</a></li>" +
	"<li><a href=\"/config\">/config</a></li>" +
	"</ul>" +
	"</body></html>"

// StatusHandler serves the landing page, the health check and the configuration dump.
type StatusHandler struct {
	Config *config.Config
}

// NewStatusHandler creates a new instance of StatusHandler.
func NewStatusHandler(cfg *config.Config) *StatusHandler {
	return &StatusHandler{
		Config: cfg,
	}
}

// Register adds the routes to mux. GET patterns also match HEAD.
func (h *StatusHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /config", h.ShowConfig)
}

// Index handles GET /.
func (h *StatusHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

// Health handles GET /health. It must not touch the filesystem.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ShowConfig handles GET /config.
func (h *StatusHandler) ShowConfig(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(h.Config)
	if err != nil {
		logAndReturnError(w, "Internal Server Error", http.StatusInternalServerError, fmt.Sprintf("Error encoding config: %s", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
