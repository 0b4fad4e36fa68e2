// Package domain defines the core entities for one-time-password challenges.
package domain

import "time"

// OtpChallenge represents a pending one-time-password challenge for a
// destination. Only the code digest is stored; the plain code exists solely
// in transit to the delivery channel.
type OtpChallenge struct {
	// Destination is the delivery target (an email address or phone number).
	// At most one active challenge exists per destination.
	Destination string

	// CodeDigest is the keyed digest of the plain code. The plain code is
	// never persisted.
	CodeDigest []byte

	// CreatedAt is when the challenge was issued.
	CreatedAt time.Time

	// ExpiresAt is when the challenge stops being verifiable.
	ExpiresAt time.Time

	// AttemptsRemaining counts the verification attempts left. It never goes
	// below zero.
	AttemptsRemaining int

	// Consumed marks a successfully verified challenge. A consumed challenge
	// can never be verified again.
	Consumed bool
}

// Expired reports whether the challenge has passed its expiration time.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// RateLimitBucket tracks challenge requests per destination within a fixed
// window.
type RateLimitBucket struct {
	Key         string
	WindowStart time.Time
	Count       int
}
