package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "analysis-metrics"

// AnalysisMetrics provides metrics collection for code analyses
type AnalysisMetrics struct {
	startedCounter    metric.Int64Counter
	completedCounter  metric.Int64Counter
	failedCounter     metric.Int64Counter
	durationHistogram metric.Float64Histogram
	activeGauge       metric.Int64UpDownCounter
}

// NewAnalysisMetrics creates a new analysis metrics collector on the global meter provider
func NewAnalysisMetrics() (*AnalysisMetrics, error) {
	return NewAnalysisMetricsWithProvider(otel.GetMeterProvider())
}

// NewAnalysisMetricsWithProvider creates a collector whose instruments come from provider
func NewAnalysisMetricsWithProvider(provider metric.MeterProvider) (*AnalysisMetrics, error) {
	meter := provider.Meter(meterName)

	startedCounter, err := meter.Int64Counter(
		"code_analyzer.analyses.started",
		metric.WithDescription("Total number of analyses started"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	completedCounter, err := meter.Int64Counter(
		"code_analyzer.analyses.completed",
		metric.WithDescription("Total number of analyses that returned a response"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	failedCounter, err := meter.Int64Counter(
		"code_analyzer.analyses.failed",
		metric.WithDescription("Total number of analyses that failed"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram(
		"code_analyzer.analysis.duration",
		metric.WithDescription("Duration of analysis requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	activeGauge, err := meter.Int64UpDownCounter(
		"code_analyzer.analyses.active",
		metric.WithDescription("Number of analyses currently awaiting the model"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	return &AnalysisMetrics{
		startedCounter:    startedCounter,
		completedCounter:  completedCounter,
		failedCounter:     failedCounter,
		durationHistogram: durationHistogram,
		activeGauge:       activeGauge,
	}, nil
}

// RecordStarted records a new analysis
func (am *AnalysisMetrics) RecordStarted(ctx context.Context, model string) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	am.startedCounter.Add(ctx, 1, attrs)
	am.activeGauge.Add(ctx, 1, attrs)
}

// RecordCompleted records a successful analysis
func (am *AnalysisMetrics) RecordCompleted(ctx context.Context, model string, duration time.Duration) {
	am.completedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("model", model),
			attribute.String("status", "completed"),
		),
	)
	am.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("model", model),
			attribute.String("status", "completed"),
		),
	)
	am.activeGauge.Add(ctx, -1, metric.WithAttributes(attribute.String("model", model)))
}

// RecordFailed records a failed analysis
func (am *AnalysisMetrics) RecordFailed(ctx context.Context, model, errorType string, duration time.Duration) {
	am.failedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("model", model),
			attribute.String("status", "failed"),
			attribute.String("error.type", errorType),
		),
	)
	am.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("model", model),
			attribute.String("status", "failed"),
		),
	)
	am.activeGauge.Add(ctx, -1, metric.WithAttributes(attribute.String("model", model)))
}
