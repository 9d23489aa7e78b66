package alertmanager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"

	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/dto"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
	domainerrors "github.com/qj0r9j0vc2/silence-bridge/internal/domain/errors"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
)

const (
	silencesPath = "/api/v2/silences"
	healthPath   = "/-/healthy"
)

// Client talks to the Alertmanager v2 API.
// Implements the silence.SilenceCreator interface.
type Client struct {
	api     api.Client
	timeout time.Duration
	metrics *observability.Metrics
}

// NewClient creates a new Alertmanager client. metrics may be nil.
func NewClient(address string, timeout time.Duration, metrics *observability.Metrics) (*Client, error) {
	apiClient, err := api.NewClient(api.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("creating alertmanager client: %w", err)
	}

	return &Client{
		api:     apiClient,
		timeout: timeout,
		metrics: metrics,
	}, nil
}

// CreateSilence posts a new silence and returns its ID.
func (c *Client) CreateSilence(ctx context.Context, req *entity.SilenceRequest) (string, error) {
	start := time.Now()
	silenceID, err := c.createSilence(ctx, req)
	if c.metrics != nil {
		c.metrics.RecordAlertmanagerRequest(ctx, "create_silence", err == nil, time.Since(start))
	}
	return silenceID, err
}

func (c *Client) createSilence(ctx context.Context, req *entity.SilenceRequest) (string, error) {
	payload, err := json.Marshal(dto.ToAlertmanagerSilence(req))
	if err != nil {
		return "", domainerrors.NewPermanentError("encoding silence payload", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.api.URL(silencesPath, nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return "", domainerrors.NewPermanentError("building silence request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, body, err := c.api.Do(ctx, httpReq)
	if err != nil {
		return "", categorizeTransportError("creating silence", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", categorizeStatusError("creating silence", resp.StatusCode, body)
	}

	var silenceResp dto.AlertmanagerSilenceResponse
	if err := json.Unmarshal(body, &silenceResp); err != nil {
		return "", domainerrors.NewPermanentError("decoding silence response", err)
	}
	if silenceResp.SilenceID == "" {
		return "", domainerrors.NewPermanentError("alertmanager response missing silenceID", nil)
	}

	return silenceResp.SilenceID, nil
}

// Ping checks the Alertmanager health endpoint.
// Implements the handler.ReadinessChecker interface.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.api.URL(healthPath, nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}

	resp, _, err := c.api.Do(ctx, httpReq)
	if err != nil {
		return fmt.Errorf("alertmanager unreachable: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("alertmanager health returned status %d", resp.StatusCode)
	}

	return nil
}

// categorizeTransportError wraps connection-level failures as transient or
// permanent domain errors. Network errors and cut-off requests are
// transient.
func categorizeTransportError(operation string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return domainerrors.NewTransientError(
			fmt.Sprintf("%s: network error", operation),
			err,
		)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerrors.NewTransientError(
			fmt.Sprintf("%s: request aborted", operation),
			err,
		)
	}

	return domainerrors.NewPermanentError(operation, err)
}

// categorizeStatusError maps non-200 responses. Server errors are
// transient, everything else is permanent.
func categorizeStatusError(operation string, statusCode int, body []byte) error {
	msg := fmt.Sprintf("%s: alertmanager returned %d: %s", operation, statusCode, truncateBody(body))
	if statusCode >= 500 {
		return domainerrors.NewTransientError(msg, nil)
	}
	return domainerrors.NewPermanentError(msg, nil)
}

// maxErrorBodyLen bounds how much of an upstream error body is carried into
// error messages and logs.
const maxErrorBodyLen = 512

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyLen {
		return s[:maxErrorBodyLen] + "..."
	}
	return s
}
