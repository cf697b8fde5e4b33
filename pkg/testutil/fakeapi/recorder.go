package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"notely/pkg/platform/httputil"
)

// RecordedRequest is one request as the backend saw it.
type RecordedRequest struct {
	Method        string
	Path          string
	Route         string
	Authorization string
	Status        int
}

type injectedFailure struct {
	status  int
	message string
}

type recorder struct {
	mu       sync.Mutex
	requests []RecordedRequest
	failures []injectedFailure
	metrics  *serverMetrics
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		// Requests answered before routing finished (injected failures) keep their path.
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" && !strings.Contains(p, "*") {
				route = p
			}
		}
		recorded := RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Route:         route,
			Authorization: r.Header.Get("Authorization"),
			Status:        sw.status,
		}
		if rec.metrics != nil {
			rec.metrics.observe(recorded, time.Since(start))
		}
		rec.mu.Lock()
		rec.requests = append(rec.requests, recorded)
		rec.mu.Unlock()
	})
}

// injectFailures answers the next queued failure instead of routing.
func (rec *recorder) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		var f *injectedFailure
		if len(rec.failures) > 0 {
			f = &rec.failures[0]
			rec.failures = rec.failures[1:]
		}
		rec.mu.Unlock()

		if f != nil {
			body := httputil.ErrorBody{Error: strings.ToLower(strings.ReplaceAll(http.StatusText(f.status), " ", "_")), Message: f.message}
			httputil.WriteJSON(w, f.status, body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FailNext makes the next /api request answer status with message,
// whichever endpoint it targets.
func (s *Server) FailNext(status int, message string) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.rec.failures = append(s.rec.failures, injectedFailure{status: status, message: message})
}

// Requests returns every request served so far.
func (s *Server) Requests() []RecordedRequest {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	out := make([]RecordedRequest, len(s.rec.requests))
	copy(out, s.rec.requests)
	return out
}

// Calls counts requests matching method and route pattern, e.g.
// Calls("POST", "/api/notes") or Calls("DELETE", "/api/notes/{id}").
func (s *Server) Calls(method, route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Route == route {
			n++
		}
	}
	return n
}

// ResetRequests forgets recorded requests and pending failures.
func (s *Server) ResetRequests() {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.rec.requests = nil
	s.rec.failures = nil
}
