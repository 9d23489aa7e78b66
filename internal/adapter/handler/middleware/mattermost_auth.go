package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
)

// MattermostAuth creates middleware that verifies the token Mattermost sends
// with every slash-command form. tokens is consulted per request so reloaded
// configuration takes effect without a restart. Requests are rejected with
// 500 when no tokens are configured and 401 when the token does not match.
func MattermostAuth(tokens func() []string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			configured := tokens()
			if len(configured) == 0 {
				log.Error("no mattermost tokens configured",
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
				)
				http.Error(w, "No Mattermost tokens configured", http.StatusInternalServerError)
				return
			}

			// ParseForm caches its result, so the handler's own decode
			// sees the same form data.
			if err := r.ParseForm(); err != nil {
				log.Error("failed to parse request form", "error", err.Error())
				http.Error(w, "invalid request", http.StatusBadRequest)
				return
			}

			if !tokenMatches(r.PostFormValue("token"), configured) {
				log.Warn("invalid mattermost token",
					"remote_addr", r.RemoteAddr,
					"user_name", r.PostFormValue("user_name"),
				)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tokenMatches compares the presented token against every configured token
// in constant time per candidate.
func tokenMatches(presented string, configured []string) bool {
	if presented == "" {
		return false
	}

	for _, token := range configured {
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) == 1 {
			return true
		}
	}
	return false
}
