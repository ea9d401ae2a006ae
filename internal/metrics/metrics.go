// Package metrics exposes analysis counters and stage timings through
// OpenTelemetry, exported in the Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const instrumentationName = "InterviewPractice_FeedbackService/analysis"

// Telemetry bundles the meter provider and the /metrics handler.
type Telemetry struct {
	Provider *sdkmetric.MeterProvider
	Handler  http.Handler
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.Provider.Shutdown(ctx)
}

// Setup creates a meter provider backed by a private Prometheus registry.
func Setup(serviceName, environment string) (*Telemetry, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("deployment.environment", environment),
	)
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	return &Telemetry{
		Provider: provider,
		Handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, nil
}

// Recorder implements the pipeline's stage and outcome hooks.
type Recorder struct {
	analyses  metric.Int64Counter
	fallbacks metric.Int64Counter
	duration  metric.Float64Histogram
}

func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(instrumentationName)

	analyses, err := meter.Int64Counter("interview.analyses",
		metric.WithDescription("Completed answer analyses by outcome"))
	if err != nil {
		return nil, err
	}
	fallbacks, err := meter.Int64Counter("interview.fallbacks",
		metric.WithDescription("Stages that substituted a fallback result"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("interview.stage.duration",
		metric.WithDescription("Time spent in each analysis stage"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &Recorder{analyses: analyses, fallbacks: fallbacks, duration: duration}, nil
}

func (r *Recorder) StageCompleted(ctx context.Context, stage string, elapsed time.Duration, fallback bool) {
	attrs := metric.WithAttributes(attribute.String("stage", stage))
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
	if fallback {
		r.fallbacks.Add(ctx, 1, attrs)
	}
}

func (r *Recorder) AnalysisFinished(ctx context.Context, outcome string) {
	r.analyses.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
