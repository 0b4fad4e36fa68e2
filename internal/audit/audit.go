// Package audit emits structured security events for trust boundary and OTP
// outcomes. Events carry the actor role and a masked actor identifier, never
// signatures, secrets, raw codes, or cedulas.
package audit

import (
	"context"
	"log/slog"
	"strings"
)

// Event types emitted by the trust boundary and the OTP subsystem.
const (
	EventRequestAdmitted  = "request_admitted"
	EventRequestDenied    = "request_denied"
	EventTokenIssued      = "token_issued"
	EventOtpChallenged    = "otp_challenged"
	EventOtpRateLimited   = "otp_rate_limited"
	EventOtpVerified      = "otp_verified"
	EventOtpRejected      = "otp_rejected"
	EventLoginFailed      = "login_failed"
	EventSessionLoggedOut = "session_logged_out"
)

// Event outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeDenied  = "denied"
)

// Event is a single audit record.
type Event struct {
	// Type is one of the Event* constants.
	Type string

	// Outcome is OutcomeSuccess or OutcomeDenied.
	Outcome string

	// Actor is the masked actor identifier; may be empty for unknown callers.
	Actor string

	// ActorRole is the actor's claimed role; may be empty.
	ActorRole string

	// Method and Path describe the request, when one is in scope.
	Method string
	Path   string

	// Reason is the internal denial reason. Never sent to the caller; the
	// caller-visible message stays generic.
	Reason string
}

// Sink receives audit events. Implementations must not block the request path.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// slogSink implements Sink on top of structured logging.
type slogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates an audit sink that writes events to the given logger.
func NewSlogSink(logger *slog.Logger) Sink {
	return &slogSink{logger: logger}
}

// Emit writes the event as a structured log record.
func (s *slogSink) Emit(ctx context.Context, event Event) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit event",
		slog.String("event_type", event.Type),
		slog.String("outcome", event.Outcome),
		slog.String("actor", event.Actor),
		slog.String("actor_role", event.ActorRole),
		slog.String("method", event.Method),
		slog.String("path", event.Path),
		slog.String("reason", event.Reason),
	)
}

// NopSink discards all events. Used in tests.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(ctx context.Context, event Event) {}

// MaskActor masks an actor identifier for audit output, keeping only the
// first and last two characters. Identifiers of four characters or fewer are
// fully masked.
func MaskActor(actor string) string {
	if actor == "" {
		return ""
	}
	if len(actor) <= 4 {
		return strings.Repeat("*", len(actor))
	}
	return actor[:2] + strings.Repeat("*", len(actor)-4) + actor[len(actor)-2:]
}
