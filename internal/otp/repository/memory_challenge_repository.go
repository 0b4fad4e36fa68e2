// Package repository provides in-memory stores for OTP challenges and rate
// limit buckets. Challenges are short-lived and single-use, so process-local
// storage is the system of record; a restart simply invalidates pending
// challenges.
package repository

import (
	"context"
	"sync"
	"time"

	otpDomain "github.com/civicgate/trustplane/internal/otp/domain"
	"github.com/civicgate/trustplane/internal/otp/usecase"
)

// memoryChallengeRepository stores at most one challenge per destination,
// guarded by a single mutex so check-and-mutate sequences are atomic.
type memoryChallengeRepository struct {
	mu         sync.Mutex
	challenges map[string]*otpDomain.OtpChallenge
}

// NewMemoryChallengeRepository creates an in-memory challenge repository.
func NewMemoryChallengeRepository() usecase.ChallengeRepository {
	return &memoryChallengeRepository{
		challenges: make(map[string]*otpDomain.OtpChallenge),
	}
}

// Upsert stores the challenge, replacing any existing challenge for the same
// destination.
func (r *memoryChallengeRepository) Upsert(ctx context.Context, challenge *otpDomain.OtpChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *challenge
	r.challenges[challenge.Destination] = &stored
	return nil
}

// Get returns a copy of the challenge for the destination.
func (r *memoryChallengeRepository) Get(ctx context.Context, destination string) (*otpDomain.OtpChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	challenge, ok := r.challenges[destination]
	if !ok {
		return nil, otpDomain.ErrChallengeNotFound
	}
	copied := *challenge
	return &copied, nil
}

// Mutate loads the challenge for the destination and applies fn to it while
// holding the store lock. The stored challenge is updated even when fn returns
// an error, so attempt counters decremented by fn survive a failed
// verification. Returns ErrChallengeNotFound when no challenge exists.
func (r *memoryChallengeRepository) Mutate(
	ctx context.Context,
	destination string,
	fn func(challenge *otpDomain.OtpChallenge) error,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	challenge, ok := r.challenges[destination]
	if !ok {
		return otpDomain.ErrChallengeNotFound
	}
	return fn(challenge)
}

// Delete removes the challenge for the destination, if any.
func (r *memoryChallengeRepository) Delete(ctx context.Context, destination string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.challenges, destination)
	return nil
}

// memoryRateLimitRepository implements a fixed-window counter per key.
type memoryRateLimitRepository struct {
	mu      sync.Mutex
	buckets map[string]*otpDomain.RateLimitBucket
}

// NewMemoryRateLimitRepository creates an in-memory fixed-window rate limit
// repository.
func NewMemoryRateLimitRepository() usecase.RateLimitRepository {
	return &memoryRateLimitRepository{
		buckets: make(map[string]*otpDomain.RateLimitBucket),
	}
}

// Allow increments the counter for key inside the fixed window containing now
// and reports whether the count stays within limit. A new window resets the
// counter.
func (r *memoryRateLimitRepository) Allow(
	ctx context.Context,
	key string,
	now time.Time,
	window time.Duration,
	limit int,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	windowStart := now.Truncate(window)
	bucket, ok := r.buckets[key]
	if !ok || !bucket.WindowStart.Equal(windowStart) {
		bucket = &otpDomain.RateLimitBucket{Key: key, WindowStart: windowStart}
		r.buckets[key] = bucket
	}

	if bucket.Count >= limit {
		return false, nil
	}
	bucket.Count++
	return true, nil
}
