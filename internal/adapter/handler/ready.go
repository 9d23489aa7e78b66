package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// ReadinessChecker reports whether a downstream dependency is reachable.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// ReadyHandler handles readiness probes by pinging registered dependencies.
type ReadyHandler struct {
	checkers map[string]ReadinessChecker
}

// NewReadyHandler creates a readiness handler with no checkers. Until
// checkers are added it always reports ready.
func NewReadyHandler() *ReadyHandler {
	return &ReadyHandler{
		checkers: make(map[string]ReadinessChecker),
	}
}

// AddChecker registers a named dependency check.
func (h *ReadyHandler) AddChecker(name string, checker ReadinessChecker) {
	h.checkers[name] = checker
}

// checkStatus is the per-dependency result in the readiness response.
type checkStatus struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// ServeHTTP handles GET /ready. Any failing check turns the response into
// 503 so orchestrators stop routing traffic here.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ready := true
	checks := make(map[string]checkStatus, len(h.checkers))
	for name, checker := range h.checkers {
		if err := checker.Ping(r.Context()); err != nil {
			ready = false
			checks[name] = checkStatus{Ready: false, Error: err.Error()}
			continue
		}
		checks[name] = checkStatus{Ready: true}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"ready":  ready,
		"checks": checks,
	})
}
