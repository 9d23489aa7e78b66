package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/config"
)

func newReloadFixture(t *testing.T) (*ReloadHandler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeReloadConfig(t, path, `
server:
  port: 9000
logging:
  level: info
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	manager := config.NewConfigManager(path, cfg, nopLogger{})
	return NewReloadHandler(manager, nopLogger{}), path
}

func writeReloadConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func postReload(h *ReloadHandler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/-/reload", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeReloadResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode reload response: %v", err)
	}
	return body
}

func TestReloadHandler_Success(t *testing.T) {
	h, path := newReloadFixture(t)
	writeReloadConfig(t, path, `
server:
  port: 9000
logging:
  level: debug
`)

	w := postReload(h)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if body := decodeReloadResponse(t, w); body["status"] != "reloaded" {
		t.Errorf("expected status reloaded, got %q", body["status"])
	}
}

func TestReloadHandler_StaticChangeLeavesConfig(t *testing.T) {
	h, path := newReloadFixture(t)
	writeReloadConfig(t, path, `
server:
  port: 9001
logging:
  level: info
`)

	w := postReload(h)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	body := decodeReloadResponse(t, w)
	if body["status"] != "unchanged" {
		t.Errorf("expected status unchanged, got %q", body["status"])
	}
	if body["note"] == "" {
		t.Error("expected a note explaining the restart requirement")
	}
}

func TestReloadHandler_InvalidFile(t *testing.T) {
	h, path := newReloadFixture(t)
	writeReloadConfig(t, path, "logging: [broken")

	w := postReload(h)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	body := decodeReloadResponse(t, w)
	if body["status"] != "error" {
		t.Errorf("expected status error, got %q", body["status"])
	}
	if body["error"] == "" {
		t.Error("expected an error message in the response")
	}
}

func TestReloadHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newReloadFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/-/reload", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}
