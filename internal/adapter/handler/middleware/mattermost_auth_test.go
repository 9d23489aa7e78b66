package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newMattermostRequest(token string) *http.Request {
	form := url.Values{
		"token":     {token},
		"user_name": {"alice"},
		"text":      {"alertname=Foo 2h test"},
	}
	r := httptest.NewRequest(http.MethodPost, "/webhook/mattermost/command", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func staticTokens(tokens ...string) func() []string {
	return func() []string { return tokens }
}

func TestMattermostAuth(t *testing.T) {
	tests := []struct {
		name           string
		tokens         []string
		presented      string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid token passes",
			tokens:         []string{"secret-token"},
			presented:      "secret-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "second configured token passes",
			tokens:         []string{"token-a", "token-b"},
			presented:      "token-b",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong token rejected",
			tokens:         []string{"secret-token"},
			presented:      "wrong",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token",
		},
		{
			name:           "missing token rejected",
			tokens:         []string{"secret-token"},
			presented:      "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token",
		},
		{
			name:           "no tokens configured is a server error",
			tokens:         nil,
			presented:      "anything",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "No Mattermost tokens configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			mw := MattermostAuth(staticTokens(tt.tokens...), nopLogger{})
			mw(okHandler()).ServeHTTP(w, newMattermostRequest(tt.presented))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestMattermostAuth_ConsultsTokensPerRequest(t *testing.T) {
	tokens := []string{"old-token"}
	mw := MattermostAuth(func() []string { return tokens }, nopLogger{})
	handler := mw(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newMattermostRequest("new-token"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before rotation, got %d", w.Code)
	}

	// Rotate tokens the way a config reload does.
	tokens = []string{"new-token"}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, newMattermostRequest("new-token"))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 after rotation, got %d", w.Code)
	}
}

func TestMattermostAuth_FormRemainsReadable(t *testing.T) {
	var gotText string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotText = r.PostFormValue("text")
	})

	w := httptest.NewRecorder()
	MattermostAuth(staticTokens("secret-token"), nopLogger{})(next).ServeHTTP(w, newMattermostRequest("secret-token"))

	if gotText != "alertname=Foo 2h test" {
		t.Errorf("expected handler to read form text, got %q", gotText)
	}
}
