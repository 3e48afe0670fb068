package comments

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repository useful for tests.
type MemoryRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]Comment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{comments: make(map[uuid.UUID]Comment)}
}

func (r *MemoryRepo) Insert(ctx context.Context, c Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[c.ID] = c
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id uuid.UUID) (Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) Update(ctx context.Context, c Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[c.ID]; !ok {
		return ErrNotFound
	}
	r.comments[c.ID] = c
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}
