package usecase

import (
	"context"
	"time"

	"github.com/civicgate/trustplane/internal/metrics"
)

// piiUseCaseWithMetrics decorates PIIUseCase with metrics instrumentation.
type piiUseCaseWithMetrics struct {
	next    PIIUseCase
	metrics metrics.BusinessMetrics
}

// NewPIIUseCaseWithMetrics wraps a PIIUseCase with metrics recording.
func NewPIIUseCaseWithMetrics(useCase PIIUseCase, m metrics.BusinessMetrics) PIIUseCase {
	return &piiUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Encrypt records metrics for encryption operations.
func (p *piiUseCaseWithMetrics) Encrypt(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	content, err := p.next.Encrypt(ctx, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "pii", "pii_encrypt", status)
	p.metrics.RecordDuration(ctx, "pii", "pii_encrypt", time.Since(start), status)

	return content, err
}

// Decrypt records metrics for decryption operations.
func (p *piiUseCaseWithMetrics) Decrypt(ctx context.Context, content string) (string, error) {
	start := time.Now()
	plaintext, err := p.next.Decrypt(ctx, content)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "pii", "pii_decrypt", status)
	p.metrics.RecordDuration(ctx, "pii", "pii_decrypt", time.Since(start), status)

	return plaintext, err
}

// Anonymize records metrics for anonymization operations.
func (p *piiUseCaseWithMetrics) Anonymize(ctx context.Context, value string, asEmail bool) (string, error) {
	start := time.Now()
	digest, err := p.next.Anonymize(ctx, value, asEmail)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "pii", "pii_anonymize", status)
	p.metrics.RecordDuration(ctx, "pii", "pii_anonymize", time.Since(start), status)

	return digest, err
}
