package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics.
type Metrics struct {
	meter metric.Meter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPRequestsActive  metric.Int64UpDownCounter

	// Silence pipeline metrics
	SilenceRequestsTotal   metric.Int64Counter
	SilenceRequestDuration metric.Float64Histogram

	// Alertmanager client metrics
	AlertmanagerRequestsTotal   metric.Int64Counter
	AlertmanagerRequestDuration metric.Float64Histogram
}

// NewMetrics creates and registers all application metrics.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	b := &instrumentBuilder{meter: meter}

	m := &Metrics{
		meter: meter,

		HTTPRequestsTotal:   b.counter("http.server.requests.total", "Total number of HTTP requests"),
		HTTPRequestDuration: b.histogram("http.server.request.duration", "HTTP request duration in seconds"),
		HTTPRequestsActive:  b.upDownCounter("http.server.requests.active", "Number of active HTTP requests"),

		SilenceRequestsTotal:   b.counter("silence.requests.total", "Total number of slash-command silence requests"),
		SilenceRequestDuration: b.histogram("silence.request.duration", "Silence request handling duration in seconds"),

		AlertmanagerRequestsTotal:   b.counter("alertmanager.client.requests.total", "Total number of outbound Alertmanager API calls"),
		AlertmanagerRequestDuration: b.histogram("alertmanager.client.request.duration", "Outbound Alertmanager API call duration in seconds"),
	}
	if b.err != nil {
		return nil, b.err
	}

	return m, nil
}

// instrumentBuilder creates instruments and latches the first error so
// NewMetrics can check once after building the whole set.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	if b.err != nil {
		return nil
	}
	c, err := b.meter.Int64Counter(name,
		metric.WithDescription(desc),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
	}
	return c
}

func (b *instrumentBuilder) upDownCounter(name, desc string) metric.Int64UpDownCounter {
	if b.err != nil {
		return nil
	}
	c, err := b.meter.Int64UpDownCounter(name,
		metric.WithDescription(desc),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
	}
	return c
}

func (b *instrumentBuilder) histogram(name, desc string) metric.Float64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Float64Histogram(name,
		metric.WithDescription(desc),
		metric.WithUnit("s"),
	)
	if err != nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
	}
	return h
}

// RecordHTTPRequest records HTTP request metrics.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordSilenceRequest records one slash-command silence request.
func (m *Metrics) RecordSilenceRequest(ctx context.Context, platform, outcome string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("platform", platform),
		attribute.String("outcome", outcome),
	}

	m.SilenceRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.SilenceRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordAlertmanagerRequest records one outbound Alertmanager API call.
func (m *Metrics) RecordAlertmanagerRequest(ctx context.Context, operation string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	}

	m.AlertmanagerRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.AlertmanagerRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
