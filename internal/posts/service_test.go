package posts

import (
	"context"
	"errors"
	"testing"

	"social-platform/internal/rbac"
	"social-platform/internal/users"

	"github.com/google/uuid"
)

func newFixture(t *testing.T) (*Service, *users.MemoryRepo) {
	t.Helper()
	accounts := users.NewMemoryRepo()
	resolver := rbac.NewResolver(accounts, rbac.DefaultTable())
	return NewService(NewMemoryRepo(), rbac.NewAuthorizer(resolver, nil)), accounts
}

func addUser(accounts *users.MemoryRepo, roles ...rbac.Role) uuid.UUID {
	id := uuid.New()
	accounts.Add(users.User{ID: id, Email: id.String() + "@example.com"}, roles...)
	return id
}

func TestUpdate_OwnerAllowed(t *testing.T) {
	svc, accounts := newFixture(t)
	ctx := context.Background()
	owner := addUser(accounts, rbac.RoleUser)

	p, err := svc.Create(ctx, owner, CreateRequest{Title: "hello", Body: "world"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, owner, p.ID, UpdateRequest{Title: "hello2", Body: "world"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "hello2" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
}

func TestUpdate_OtherUserDenied(t *testing.T) {
	svc, accounts := newFixture(t)
	ctx := context.Background()
	owner := addUser(accounts, rbac.RoleUser)
	other := addUser(accounts, rbac.RoleUser)

	p, err := svc.Create(ctx, owner, CreateRequest{Title: "hello", Body: "world"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, other, p.ID, UpdateRequest{Title: "hijack"})
	if !errors.Is(err, rbac.ErrDenied) {
		t.Fatalf("expected rbac.ErrDenied, got %v", err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "hello" {
		t.Fatalf("denied update must not change the post")
	}
}

func TestUpdate_ModeratorOverridesOwnership(t *testing.T) {
	svc, accounts := newFixture(t)
	ctx := context.Background()
	owner := addUser(accounts, rbac.RoleUser)
	mod := addUser(accounts, rbac.RoleModerator)

	p, err := svc.Create(ctx, owner, CreateRequest{Title: "hello", Body: "world"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, mod, p.ID, UpdateRequest{Title: "moderated"}); err != nil {
		t.Fatalf("moderator update: %v", err)
	}
}

func TestDelete_OwnVsAny(t *testing.T) {
	svc, accounts := newFixture(t)
	ctx := context.Background()
	owner := addUser(accounts, rbac.RoleUser)
	other := addUser(accounts, rbac.RoleUser)
	mod := addUser(accounts, rbac.RoleModerator)

	p1, _ := svc.Create(ctx, owner, CreateRequest{Title: "one"})
	p2, _ := svc.Create(ctx, owner, CreateRequest{Title: "two"})

	if err := svc.Delete(ctx, other, p1.ID); !errors.Is(err, rbac.ErrDenied) {
		t.Fatalf("expected rbac.ErrDenied, got %v", err)
	}
	if err := svc.Delete(ctx, owner, p1.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(ctx, mod, p2.ID); err != nil {
		t.Fatalf("moderator delete: %v", err)
	}
}

func TestSetHidden_RestrictedDenied(t *testing.T) {
	svc, accounts := newFixture(t)
	ctx := context.Background()
	owner := addUser(accounts, rbac.RoleUser)
	restricted := addUser(accounts, rbac.RoleRestricted)

	p, err := svc.Create(ctx, owner, CreateRequest{Title: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetHidden(ctx, restricted, p.ID, true); !errors.Is(err, rbac.ErrDenied) {
		t.Fatalf("expected rbac.ErrDenied, got %v", err)
	}
	if _, err := svc.SetHidden(ctx, owner, p.ID, true); err != nil {
		t.Fatalf("owner hide: %v", err)
	}
}

func TestUpdate_MissingPost(t *testing.T) {
	svc, accounts := newFixture(t)
	owner := addUser(accounts, rbac.RoleUser)

	_, err := svc.Update(context.Background(), owner, uuid.New(), UpdateRequest{Title: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc, accounts := newFixture(t)
	owner := addUser(accounts, rbac.RoleUser)

	if _, err := svc.Create(context.Background(), owner, CreateRequest{Title: "  "}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
