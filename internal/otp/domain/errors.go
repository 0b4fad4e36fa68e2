package domain

import "github.com/civicgate/trustplane/internal/errors"

// Domain errors for OTP operations. Every verification failure maps to a
// generic unauthorized response at the HTTP surface; the precise reason is
// only visible to logs and audit events so callers cannot distinguish a
// wrong code from a missing or exhausted challenge.
var (
	// ErrChallengeNotFound indicates no active challenge exists for the
	// destination.
	ErrChallengeNotFound = errors.Wrap(errors.ErrUnauthorized, "otp challenge not found")

	// ErrChallengeExpired indicates the challenge passed its TTL.
	ErrChallengeExpired = errors.Wrap(errors.ErrUnauthorized, "otp challenge expired")

	// ErrChallengeConsumed indicates the challenge was already verified once.
	ErrChallengeConsumed = errors.Wrap(errors.ErrUnauthorized, "otp challenge already consumed")

	// ErrAttemptsExhausted indicates all verification attempts were used.
	ErrAttemptsExhausted = errors.Wrap(errors.ErrUnauthorized, "otp attempts exhausted")

	// ErrCodeMismatch indicates the submitted code did not match the digest.
	ErrCodeMismatch = errors.Wrap(errors.ErrUnauthorized, "otp code mismatch")

	// ErrChallengeRateLimited indicates the destination requested too many
	// challenges within the window.
	ErrChallengeRateLimited = errors.Wrap(errors.ErrRateLimited, "otp challenge rate limited")

	// ErrDeliveryFailed indicates the code could not be handed to the
	// delivery channel. The challenge is not stored when delivery fails.
	ErrDeliveryFailed = errors.New("otp delivery failed")
)
