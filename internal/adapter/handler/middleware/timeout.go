package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
)

// timeoutExemptPaths are served without a deadline.
var timeoutExemptPaths = map[string]struct{}{
	"/":         {},
	"/health":   {},
	"/ready":    {},
	"/metrics":  {},
	"/-/reload": {},
}

// Timeout enforces a per-request deadline on webhook routes. When the
// deadline fires before the handler writes anything, the client gets a 504
// and the cancelled context tells the handler to stop; later writes from
// the handler are dropped.
func Timeout(timeout time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, exempt := timeoutExemptPaths[r.URL.Path]; exempt {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{ResponseWriter: w}
			done := make(chan struct{})
			panicChan := make(chan any, 1)

			go func() {
				// Panics must reach the recovery middleware, which runs on
				// the request goroutine.
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicChan:
				panic(p)
			case <-done:
			case <-ctx.Done():
				if tw.markTimedOut() {
					log.Warn("request timeout",
						"method", r.Method,
						"path", r.URL.Path,
						"timeout", timeout.String(),
					)
					http.Error(w, "Gateway Timeout", http.StatusGatewayTimeout)
					return
				}
				// The handler beat the deadline to the first write; let it
				// finish the response.
				select {
				case <-done:
				case p := <-panicChan:
					panic(p)
				}
			}
		})
	}
}

// timeoutWriter serializes the race between the handler finishing and the
// deadline firing: whichever side claims the writer first produces the
// response, and the loser's writes are dropped.
type timeoutWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	timedOut bool
	wrote    bool
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return
	}
	tw.wrote = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return len(b), nil
	}
	tw.wrote = true
	return tw.ResponseWriter.Write(b)
}

// markTimedOut claims the writer for the timeout branch. It reports false
// when the handler already started the response.
func (tw *timeoutWriter) markTimedOut() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.wrote {
		return false
	}
	tw.timedOut = true
	return true
}
