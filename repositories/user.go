// Package repositories holds the persistence contracts for each aggregate
// and their interchangeable backends: mutex-guarded in-memory maps and
// BadgerDB. Each repository is the sole writer of its aggregate's storage;
// cross-aggregate rules live in the services layer.
package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"match-lab/domain"
	"match-lab/errors"
)

type IUserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)
	Store(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]storedUser
}

// storedUser keeps a detached copy so callers can't mutate repository state
// through a returned aggregate.
type storedUser struct {
	name string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[uuid.UUID]storedUser{}}
}

func (r *MemoryUserRepository) Get(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.users[id]
	if !ok {
		return domain.User{}, errors.UserNotFoundError{UserID: id}
	}
	return domain.User{ID: id, Name: stored.name}, nil
}

func (r *MemoryUserRepository) Store(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return errors.AlreadyExistsError{Entity: "User", ID: user.ID}
	}
	r.users[user.ID] = storedUser{name: user.Name}
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.UserNotFoundError{UserID: user.ID}
	}
	r.users[user.ID] = storedUser{name: user.Name}
	return nil
}
