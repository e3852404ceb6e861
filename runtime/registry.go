// Package runtime holds the connection-tracking state that lives for the
// duration of the process rather than in a repository.
package runtime

import (
	"sync"

	"github.com/google/uuid"

	"match-lab/contract"
	"match-lab/errors"
)

// Registry is the single directory of live client connections, keyed by
// user id. A user holds at most one connection; a later Put replaces the
// earlier entry without closing it, the transport layer owns closing.
type Registry struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]contract.UserClient
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uuid.UUID]contract.UserClient)}
}

func (r *Registry) Put(userID uuid.UUID, client contract.UserClient) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[userID] = client
}

// Remove drops the user's entry. Removing an unknown user is a no-op.
func (r *Registry) Remove(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, userID)
}

// Get resolves the live connection for a user. Users without a connection
// yield ErrClientNotAvailable.
func (r *Registry) Get(userID uuid.UUID) (contract.UserClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[userID]
	if !ok {
		return nil, errors.ErrClientNotAvailable
	}
	return client, nil
}
