package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func signSlackBody(secret, timestamp, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func newSlackRequest(body, timestamp, signature string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/webhook/slack/command", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if timestamp != "" {
		r.Header.Set("X-Slack-Request-Timestamp", timestamp)
	}
	if signature != "" {
		r.Header.Set("X-Slack-Signature", signature)
	}
	return r
}

func TestSlackAuth(t *testing.T) {
	const secret = "8f742231b10e8888abcd99yyyzzz85a5"
	const body = "command=%2Fsilence&text=alertname%3DFoo+2h+test&user_name=alice"

	now := strconv.FormatInt(time.Now().Unix(), 10)
	stale := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)

	tests := []struct {
		name           string
		timestamp      string
		signature      string
		expectedStatus int
	}{
		{
			name:           "valid signature passes",
			timestamp:      now,
			signature:      signSlackBody(secret, now, body),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "tampered signature rejected",
			timestamp:      now,
			signature:      signSlackBody("other-secret", now, body),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "stale timestamp rejected",
			timestamp:      stale,
			signature:      signSlackBody(secret, stale, body),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing headers rejected",
			timestamp:      "",
			signature:      "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage timestamp rejected",
			timestamp:      "not-a-number",
			signature:      signSlackBody(secret, "not-a-number", body),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			mw := SlackAuth(secret, nopLogger{})
			mw(okHandler()).ServeHTTP(w, newSlackRequest(body, tt.timestamp, tt.signature))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestSlackAuth_EmptySecretSkipsVerification(t *testing.T) {
	w := httptest.NewRecorder()

	mw := SlackAuth("", nopLogger{})
	mw(okHandler()).ServeHTTP(w, newSlackRequest("text=hello", "", ""))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 with empty secret, got %d", w.Code)
	}
}

func TestSlackAuth_RestoresBodyForHandler(t *testing.T) {
	const secret = "8f742231b10e8888abcd99yyyzzz85a5"
	const body = "command=%2Fsilence&text=hello"

	var gotBody string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	})

	now := strconv.FormatInt(time.Now().Unix(), 10)
	w := httptest.NewRecorder()

	SlackAuth(secret, nopLogger{})(next).ServeHTTP(w, newSlackRequest(body, now, signSlackBody(secret, now, body)))

	if gotBody != body {
		t.Errorf("expected handler to see original body, got %q", gotBody)
	}
}
