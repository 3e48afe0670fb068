package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()
	userID := uuid.New()

	if err := s.Put(ctx, "tok", userID, time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}

	if err := s.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "tok"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after delete, got %v", err)
	}
	// Deleting twice is a no-op.
	if err := s.Delete(ctx, "tok"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()

	now := time.Unix(1700000000, 0).UTC()
	s.SetClock(func() time.Time { return now })

	if err := s.Put(ctx, "tok", uuid.New(), time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Get(ctx, "tok"); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	now = now.Add(time.Hour + time.Second)
	if _, err := s.Get(ctx, "tok"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after expiry, got %v", err)
	}
}

func TestMemoryStore_TakeConsumesToken(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()
	userID := uuid.New()

	if err := s.Put(ctx, "tok", userID, time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Take(ctx, "tok")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
	// Second spend loses the race deterministically.
	if _, err := s.Take(ctx, "tok"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on second take, got %v", err)
	}
}
