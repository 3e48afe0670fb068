package posts

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]Post
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{posts: make(map[uuid.UUID]Post)}
}

func (r *MemoryRepo) Insert(ctx context.Context, p Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = p
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id uuid.UUID) (Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) Update(ctx context.Context, p Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; !ok {
		return ErrNotFound
	}
	r.posts[p.ID] = p
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}
