// Package service provides code generation, code digesting, and delivery
// abstractions for the OTP subsystem.
package service

import "context"

// CodeGenerator produces verification codes.
type CodeGenerator interface {
	// Generate creates a cryptographically secure random numeric code of the
	// given length.
	Generate(length int) (string, error)
}

// CodeDigester computes and compares keyed digests of verification codes so
// the plain code never needs to be stored.
type CodeDigester interface {
	// Digest computes the keyed digest of the code for the destination.
	Digest(destination, code string) []byte

	// Compare reports whether the code matches the stored digest in constant
	// time.
	Compare(destination, code string, digest []byte) bool
}

// DeliveryService hands a verification code to a delivery channel (email,
// SMS). Implementations must honor context cancellation.
type DeliveryService interface {
	Deliver(ctx context.Context, destination, code string) error
}
