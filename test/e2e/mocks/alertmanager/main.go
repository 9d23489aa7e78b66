package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Standalone mock Alertmanager for manual runs of the bridge:
//
//	go run ./test/e2e/mocks/alertmanager
//	ALERTMANAGER_URL=http://localhost:9093 go run ./cmd/silence-bridge
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9093"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: NewMockAlertmanagerHandler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Println("shutting down mock alertmanager")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("mock alertmanager listening on port %s", port)
	log.Println("  POST /api/v2/silences   create a silence")
	log.Println("  GET  /api/v2/silences   list stored silences")
	log.Println("  POST /api/test/reset    clear stored silences")
	log.Println("  GET  /-/healthy         health check")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
