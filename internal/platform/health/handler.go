// Package health covers both ends of the /health check: the handler the fake
// backend mounts and the client check the CLI runs against a real server.
package health

import (
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"notely/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc reports the health of a dependency; nil means healthy.
type CheckFunc func() error

// Handler serves the health endpoints.
type Handler struct {
	startTime time.Time
	service   string

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewHandler creates a health handler reporting as service.
func NewHandler(service string) *Handler {
	return &Handler{
		startTime: time.Now(),
		service:   service,
		checks:    make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a named dependency check reported by /health.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Register mounts /health on r. It must sit outside any auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
}

// Status is the /health response body.
type Status struct {
	Status        string            `json:"status"`
	Service       string            `json:"service,omitempty"`
	Version       string            `json:"version,omitempty"`
	UptimeSeconds int64             `json:"uptime_seconds,omitempty"`
	Timestamp     string            `json:"timestamp,omitempty"`
	Checks        map[string]string `json:"checks,omitempty"`
}

// Healthy reports whether the server described itself as up.
func (s *Status) Healthy() bool {
	switch s.Status {
	case "OK", "ok", "healthy", "up":
		return true
	default:
		return false
	}
}

// HandleStatus answers 200 with every check up, 503 otherwise.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	checks := make(map[string]CheckFunc, len(h.checks))
	maps.Copy(checks, h.checks)
	h.mu.RUnlock()

	resp := Status{
		Status:        "healthy",
		Service:       h.service,
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	if len(checks) > 0 {
		resp.Checks = make(map[string]string, len(checks))
	}
	for name, check := range checks {
		if err := check(); err != nil {
			resp.Checks[name] = "down: " + err.Error()
			resp.Status = "unhealthy"
			continue
		}
		resp.Checks[name] = "up"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}
