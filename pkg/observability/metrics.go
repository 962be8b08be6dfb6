package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string

	// Registry defaults to a fresh registry with Go and process collectors.
	Registry *prometheus.Registry
}

// InitMetrics initializes the Prometheus exporter and returns the
// MeterProvider together with the /metrics handler.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("observability: create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// PredictionMetrics records booking prediction outcomes and latency.
type PredictionMetrics struct {
	predictions metric.Int64Counter
	failures    metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewPredictionMetrics registers the prediction instruments on the meter provider.
func NewPredictionMetrics(provider metric.MeterProvider, serviceName string) (*PredictionMetrics, error) {
	meter := provider.Meter(serviceName)

	predictions, err := meter.Int64Counter("booking_predictions",
		metric.WithDescription("Completed booking predictions by outcome and profile."),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create predictions counter: %w", err)
	}

	failures, err := meter.Int64Counter("booking_prediction_failures",
		metric.WithDescription("Booking predictions that failed, by reason."),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create failures counter: %w", err)
	}

	latency, err := meter.Float64Histogram("booking_prediction_duration",
		metric.WithDescription("Time spent producing a booking prediction."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create latency histogram: %w", err)
	}

	return &PredictionMetrics{
		predictions: predictions,
		failures:    failures,
		latency:     latency,
	}, nil
}

// RecordPrediction counts a completed prediction and observes its latency.
func (m *PredictionMetrics) RecordPrediction(ctx context.Context, profile, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("profile", profile),
		attribute.String("outcome", outcome),
	)
	m.predictions.Add(ctx, 1, attrs)
	m.latency.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordFailure counts a failed prediction.
func (m *PredictionMetrics) RecordFailure(ctx context.Context, profile, reason string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("profile", profile),
		attribute.String("reason", reason),
	))
}
