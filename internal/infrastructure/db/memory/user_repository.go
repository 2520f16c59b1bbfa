// Package memory provides a mutex-guarded in-memory credential store used
// by tests and local runs without MongoDB. It enforces the same uniqueness
// semantics as the Mongo adapter: check-and-insert happens under a single
// lock, so concurrent duplicate registrations resolve to exactly one win.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/authcore/auth-service/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username) {
			return nil, domain.ErrUserExists
		}
	}

	stored := clone(user)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.users[stored.ID] = stored
	return clone(stored), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.DeletedAt == nil {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if u.DeletedAt == nil {
			users = append(users, clone(u))
		}
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return clone(u), nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id, username, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID == id {
			continue
		}
		if strings.EqualFold(other.Email, email) || strings.EqualFold(other.Username, username) {
			return nil, domain.ErrUserExists
		}
	}
	u.Username = username
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	return clone(u), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return domain.ErrUserNotFound
	}
	now := time.Now().UTC()
	u.DeletedAt = &now
	u.UpdatedAt = now
	return nil
}

func clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.DeletedAt != nil {
		t := *u.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}
