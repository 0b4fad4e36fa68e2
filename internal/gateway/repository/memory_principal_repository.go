// Package repository provides the in-memory principal directory used when no
// external identity store is configured. Entries are seeded at startup.
package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	gatewayDomain "github.com/civicgate/trustplane/internal/gateway/domain"
	"github.com/civicgate/trustplane/internal/gateway/usecase"
)

// memoryPrincipalRepository stores principals indexed by ID and email digest.
type memoryPrincipalRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*gatewayDomain.Principal
	byDigest map[string]uuid.UUID
}

// NewMemoryPrincipalRepository creates an empty in-memory directory.
func NewMemoryPrincipalRepository() usecase.PrincipalRepository {
	return &memoryPrincipalRepository{
		byID:     make(map[uuid.UUID]*gatewayDomain.Principal),
		byDigest: make(map[string]uuid.UUID),
	}
}

// Create stores a new principal, rejecting duplicate email digests.
func (r *memoryPrincipalRepository) Create(ctx context.Context, principal *gatewayDomain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byDigest[principal.EmailDigest]; ok {
		return gatewayDomain.ErrPrincipalExists
	}

	stored := *principal
	r.byID[principal.ID] = &stored
	r.byDigest[principal.EmailDigest] = principal.ID
	return nil
}

// GetByEmailDigest returns the principal matching the email digest.
func (r *memoryPrincipalRepository) GetByEmailDigest(
	ctx context.Context,
	emailDigest string,
) (*gatewayDomain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDigest[emailDigest]
	if !ok {
		return nil, gatewayDomain.ErrPrincipalNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}

// Get returns the principal by ID.
func (r *memoryPrincipalRepository) Get(ctx context.Context, id uuid.UUID) (*gatewayDomain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	principal, ok := r.byID[id]
	if !ok {
		return nil, gatewayDomain.ErrPrincipalNotFound
	}
	copied := *principal
	return &copied, nil
}
