package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records operation counts and durations per domain so
// dashboards can separate trust decisions from OTP and PII traffic.
type BusinessMetrics interface {
	// RecordOperation records one operation with its status.
	// Domain examples: "trust", "otp", "pii", "gateway"
	// Operation examples: "validate_request", "otp_verify", "pii_encrypt"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of an operation as a histogram in
	// seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordTrustDecision records an admit or deny decision at the trust
	// boundary, labeled by the caller's claimed role. Deny reasons are kept
	// out of labels; they live in audit events.
	RecordTrustDecision(ctx context.Context, role, outcome string)
}

// businessMetrics implements BusinessMetrics using OpenTelemetry instruments.
type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	decisionCounter  metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments under the given
// namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_trust_decisions_total", namespace),
		metric.WithDescription("Total number of trust boundary admit/deny decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trust decision counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		decisionCounter:  decisionCounter,
	}, nil
}

// RecordOperation increments the operation counter with domain, operation,
// and status labels.
func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordDuration records the operation duration in seconds.
func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordTrustDecision increments the decision counter with role and outcome
// labels.
func (b *businessMetrics) RecordTrustDecision(ctx context.Context, role, outcome string) {
	b.decisionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("role", role),
			attribute.String("outcome", outcome),
		),
	)
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
}

// RecordDuration does nothing.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

// RecordTrustDecision does nothing.
func (n *NoOpBusinessMetrics) RecordTrustDecision(ctx context.Context, role, outcome string) {
}
