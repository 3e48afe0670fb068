package audit

import (
	"context"
	"testing"

	"social-platform/internal/rbac"

	"github.com/google/uuid"
)

func TestService_AppendRequiresType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestService_RecordsPrivilegedAccess(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	actor := uuid.New()
	entityID := uuid.New()

	svc.LogPrivilegedAccess(context.Background(), actor, "post", entityID, rbac.PermPostEditAny)

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event")
	}
	if evs[0].Type != EventTypePrivilegedAccess {
		t.Fatalf("expected privileged_access, got %s", evs[0].Type)
	}
	if evs[0].ActorUserID != actor || evs[0].EntityKind != "post" || evs[0].EntityID != entityID {
		t.Fatalf("unexpected event: %+v", evs[0])
	}
	if evs[0].ID == uuid.Nil || evs[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp assigned")
	}
}

func TestService_LogAuthEvents(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	actor := uuid.New()

	for _, typ := range []EventType{EventTypeLogin, EventTypeTokenRefresh, EventTypeTokenRevoke} {
		if err := svc.LogAuth(context.Background(), typ, actor); err != nil {
			t.Fatalf("log %s: %v", typ, err)
		}
	}
	if len(repo.Events()) != 3 {
		t.Fatalf("expected 3 events")
	}
}
