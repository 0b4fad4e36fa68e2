// Package usecase implements business logic orchestration for OTP challenges.
package usecase

import (
	"context"
	"time"

	otpDomain "github.com/civicgate/trustplane/internal/otp/domain"
)

// ChallengeRepository stores pending challenges, one per destination.
type ChallengeRepository interface {
	// Upsert stores the challenge, replacing any existing challenge for the
	// same destination.
	Upsert(ctx context.Context, challenge *otpDomain.OtpChallenge) error

	// Get returns the challenge for the destination, or ErrChallengeNotFound.
	Get(ctx context.Context, destination string) (*otpDomain.OtpChallenge, error)

	// Mutate applies fn to the stored challenge atomically with respect to
	// other Mutate and Upsert calls. Changes made by fn persist even when fn
	// returns an error. Returns ErrChallengeNotFound when no challenge exists.
	Mutate(ctx context.Context, destination string, fn func(challenge *otpDomain.OtpChallenge) error) error

	// Delete removes the challenge for the destination.
	Delete(ctx context.Context, destination string) error
}

// RateLimitRepository counts challenge requests inside fixed windows.
type RateLimitRepository interface {
	// Allow increments the counter for key in the window containing now and
	// reports whether the count stays within limit.
	Allow(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, error)
}

// OtpUseCase issues and verifies one-time-password challenges.
type OtpUseCase interface {
	// Challenge generates a code, delivers it to the destination, and stores
	// the challenge digest. Returns ErrChallengeRateLimited when the
	// destination exceeded its window quota and ErrDeliveryFailed when the
	// code could not be handed off.
	Challenge(ctx context.Context, destination string) error

	// Verify checks the submitted code against the active challenge. A
	// successful verification consumes the challenge; it can never succeed
	// twice. Every failure reason wraps ErrUnauthorized so handlers can map
	// them to one generic response.
	Verify(ctx context.Context, destination, code string) error
}
