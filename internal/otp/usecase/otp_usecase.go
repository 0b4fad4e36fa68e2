package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/civicgate/trustplane/internal/audit"
	"github.com/civicgate/trustplane/internal/config"
	"github.com/civicgate/trustplane/internal/errors"
	otpDomain "github.com/civicgate/trustplane/internal/otp/domain"
	otpService "github.com/civicgate/trustplane/internal/otp/service"
)

// otpUseCase implements OtpUseCase.
type otpUseCase struct {
	config        *config.Config
	challengeRepo ChallengeRepository
	rateLimitRepo RateLimitRepository
	generator     otpService.CodeGenerator
	digester      otpService.CodeDigester
	delivery      otpService.DeliveryService
	auditSink     audit.Sink
	now           func() time.Time
}

// NewOtpUseCase creates a new OtpUseCase with the provided dependencies.
func NewOtpUseCase(
	cfg *config.Config,
	challengeRepo ChallengeRepository,
	rateLimitRepo RateLimitRepository,
	generator otpService.CodeGenerator,
	digester otpService.CodeDigester,
	delivery otpService.DeliveryService,
	auditSink audit.Sink,
) OtpUseCase {
	return &otpUseCase{
		config:        cfg,
		challengeRepo: challengeRepo,
		rateLimitRepo: rateLimitRepo,
		generator:     generator,
		digester:      digester,
		delivery:      delivery,
		auditSink:     auditSink,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Challenge issues a new challenge for the destination.
//
// This method:
// 1. Checks the per-destination fixed-window rate limit
// 2. Generates a random numeric code
// 3. Delivers the code through the delivery channel, bounded by a timeout
// 4. Stores the challenge with only the code digest
//
// A delivery failure leaves no challenge behind, so a caller cannot verify
// against a code that was never sent. A new challenge replaces any pending
// one for the same destination.
func (u *otpUseCase) Challenge(ctx context.Context, destination string) error {
	if destination == "" {
		return errors.Wrap(errors.ErrInvalidInput, "destination is required")
	}

	now := u.now()
	allowed, err := u.rateLimitRepo.Allow(
		ctx, destination, now, u.config.OtpRateLimitWindow, u.config.OtpRateLimitRequests,
	)
	if err != nil {
		return fmt.Errorf("failed to check otp rate limit: %w", err)
	}
	if !allowed {
		u.auditSink.Emit(ctx, audit.Event{
			Type:    audit.EventOtpRateLimited,
			Outcome: audit.OutcomeDenied,
			Actor:   audit.MaskActor(destination),
			Reason:  "challenge window quota exceeded",
		})
		return otpDomain.ErrChallengeRateLimited
	}

	code, err := u.generator.Generate(u.config.OtpCodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate otp code: %w", err)
	}

	deliveryCtx, cancel := context.WithTimeout(ctx, u.config.OtpDeliveryTimeout)
	defer cancel()
	if err := u.delivery.Deliver(deliveryCtx, destination, code); err != nil {
		return errors.Wrap(otpDomain.ErrDeliveryFailed, err.Error())
	}

	challenge := &otpDomain.OtpChallenge{
		Destination:       destination,
		CodeDigest:        u.digester.Digest(destination, code),
		CreatedAt:         now,
		ExpiresAt:         now.Add(u.config.OtpTTL),
		AttemptsRemaining: u.config.OtpMaxAttempts,
		Consumed:          false,
	}
	if err := u.challengeRepo.Upsert(ctx, challenge); err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}

	u.auditSink.Emit(ctx, audit.Event{
		Type:    audit.EventOtpChallenged,
		Outcome: audit.OutcomeSuccess,
		Actor:   audit.MaskActor(destination),
	})
	return nil
}

// Verify checks the submitted code against the active challenge.
//
// The whole check runs inside one atomic repository mutation so two
// concurrent verifications cannot both consume the same challenge or drive
// the attempt counter below zero. The attempt counter is decremented before
// the digest comparison; a failed comparison therefore always costs an
// attempt.
func (u *otpUseCase) Verify(ctx context.Context, destination, code string) error {
	if destination == "" || code == "" {
		return errors.Wrap(errors.ErrInvalidInput, "destination and code are required")
	}

	now := u.now()
	err := u.challengeRepo.Mutate(ctx, destination, func(challenge *otpDomain.OtpChallenge) error {
		if challenge.Consumed {
			return otpDomain.ErrChallengeConsumed
		}
		if challenge.Expired(now) {
			return otpDomain.ErrChallengeExpired
		}
		if challenge.AttemptsRemaining <= 0 {
			return otpDomain.ErrAttemptsExhausted
		}

		challenge.AttemptsRemaining--
		if !u.digester.Compare(destination, code, challenge.CodeDigest) {
			return otpDomain.ErrCodeMismatch
		}

		challenge.Consumed = true
		return nil
	})
	if err != nil {
		u.auditSink.Emit(ctx, audit.Event{
			Type:    audit.EventOtpRejected,
			Outcome: audit.OutcomeDenied,
			Actor:   audit.MaskActor(destination),
			Reason:  err.Error(),
		})
		return err
	}

	u.auditSink.Emit(ctx, audit.Event{
		Type:    audit.EventOtpVerified,
		Outcome: audit.OutcomeSuccess,
		Actor:   audit.MaskActor(destination),
	})
	return nil
}
