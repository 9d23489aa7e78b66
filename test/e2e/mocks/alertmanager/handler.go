package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Silence represents an Alertmanager v2 silence creation payload
type Silence struct {
	Matchers  []Matcher `json:"matchers"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	CreatedBy string    `json:"createdBy"`
	Comment   string    `json:"comment"`
}

// Matcher represents a silence matcher
type Matcher struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	IsRegex bool   `json:"isRegex"`
}

// StoredSilence represents a silence stored in the mock service
type StoredSilence struct {
	Silence
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// MockAlertmanagerHandler handles Alertmanager v2 API requests
type MockAlertmanagerHandler struct {
	mu       sync.RWMutex
	silences []StoredSilence
	nextID   int
}

// NewMockAlertmanagerHandler creates a new mock Alertmanager handler
func NewMockAlertmanagerHandler() *MockAlertmanagerHandler {
	return &MockAlertmanagerHandler{
		silences: make([]StoredSilence, 0),
	}
}

// ServeHTTP implements the http.Handler interface
func (h *MockAlertmanagerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/-/healthy":
		h.handleHealthy(w, r)
	case "/api/v2/silences":
		switch r.Method {
		case http.MethodPost:
			h.handleCreateSilence(w, r)
		case http.MethodGet:
			h.handleListSilences(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "/api/test/reset":
		h.handleReset(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleHealthy returns service health status
func (h *MockAlertmanagerHandler) handleHealthy(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// handleCreateSilence validates and stores a new silence
func (h *MockAlertmanagerHandler) handleCreateSilence(w http.ResponseWriter, r *http.Request) {
	var silence Silence
	if err := json.NewDecoder(r.Body).Decode(&silence); err != nil {
		http.Error(w, "invalid silence payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Validate the same constraints real Alertmanager enforces
	if len(silence.Matchers) == 0 {
		http.Error(w, "at least one matcher is required", http.StatusBadRequest)
		return
	}
	for _, m := range silence.Matchers {
		if m.Name == "" {
			http.Error(w, "matcher name must not be empty", http.StatusBadRequest)
			return
		}
	}
	if !silence.EndsAt.After(silence.StartsAt) {
		http.Error(w, "end time must not be before start time", http.StatusBadRequest)
		return
	}
	if silence.CreatedBy == "" {
		http.Error(w, "createdBy must not be empty", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.nextID++
	id := fmt.Sprintf("mock-silence-%04d", h.nextID)
	h.silences = append(h.silences, StoredSilence{
		Silence:    silence,
		ID:         id,
		ReceivedAt: time.Now(),
	})
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"silenceID": id})
}

// handleListSilences returns all stored silences
func (h *MockAlertmanagerHandler) handleListSilences(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	silences := make([]StoredSilence, len(h.silences))
	copy(silences, h.silences)
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(silences)
}

// handleReset clears all stored silences
func (h *MockAlertmanagerHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	h.silences = h.silences[:0]
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
}
