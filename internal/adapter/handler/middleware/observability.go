package middleware

import (
	"net/http"
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
)

// Observability records the request counter, duration histogram and
// in-flight gauge for every request.
func Observability(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			metrics.HTTPRequestsActive.Add(r.Context(), 1)
			defer metrics.HTTPRequestsActive.Add(r.Context(), -1)

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}
