package users

import (
	"context"
	"sync"

	"social-platform/internal/rbac"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]User
	roles map[uuid.UUID][]rbac.Role
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users: make(map[uuid.UUID]User),
		roles: make(map[uuid.UUID][]rbac.Role),
	}
}

func (r *MemoryRepo) Add(u User, roles ...rbac.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	r.roles[u.ID] = roles
}

func (r *MemoryRepo) Create(ctx context.Context, u User, roles ...rbac.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	r.roles[u.ID] = roles
	return nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) RolesForUser(ctx context.Context, userID uuid.UUID) ([]rbac.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]rbac.Role, len(r.roles[userID]))
	copy(out, r.roles[userID])
	return out, nil
}
