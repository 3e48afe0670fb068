package rbac

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type testEntity struct {
	id     uuid.UUID
	author uuid.UUID
}

func (e testEntity) EntityID() uuid.UUID { return e.id }
func (e testEntity) AuthorID() uuid.UUID { return e.author }

type auditRecord struct {
	entityID uuid.UUID
	perm     Permission
}

type recordingAudit struct {
	mu      sync.Mutex
	records []auditRecord
}

func (r *recordingAudit) LogPrivilegedAccess(ctx context.Context, actorID uuid.UUID, kind string, entityID uuid.UUID, perm Permission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, auditRecord{entityID: entityID, perm: perm})
}

func newAuthorizer(roles staticRoles, audit PrivilegedAccessLog) *Authorizer {
	return NewAuthorizer(NewResolver(roles, DefaultTable()), audit)
}

func TestCanModify_OwnerWithOwnPermission(t *testing.T) {
	owner := uuid.New()
	a := newAuthorizer(staticRoles{owner: {RoleUser}}, nil)

	err := a.CanModify(context.Background(), owner, "post", testEntity{author: owner}, PermPostEditOwn, PermPostEditAny)
	if err != nil {
		t.Fatalf("owner should be allowed: %v", err)
	}
}

func TestCanModify_NonOwnerWithOnlyOwnPermission(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	a := newAuthorizer(staticRoles{other: {RoleUser}}, nil)

	err := a.CanModify(context.Background(), other, "post", testEntity{author: owner}, PermPostEditOwn, PermPostEditAny)
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
}

func TestCanModify_WidePermissionIgnoresOwnership(t *testing.T) {
	owner := uuid.New()
	mod := uuid.New()
	entityID := uuid.New()
	audit := &recordingAudit{}
	a := newAuthorizer(staticRoles{mod: {RoleModerator}}, audit)

	err := a.CanModify(context.Background(), mod, "post", testEntity{id: entityID, author: owner}, PermPostEditOwn, PermPostEditAny)
	if err != nil {
		t.Fatalf("moderator should be allowed: %v", err)
	}
	if len(audit.records) != 1 || audit.records[0].perm != PermPostEditAny {
		t.Fatalf("expected privileged access recorded, got %v", audit.records)
	}
	if audit.records[0].entityID != entityID {
		t.Fatalf("expected target entity %s recorded, got %s", entityID, audit.records[0].entityID)
	}
}

func TestCanModify_WideOnOwnEntityIsNotPrivileged(t *testing.T) {
	mod := uuid.New()
	audit := &recordingAudit{}
	a := newAuthorizer(staticRoles{mod: {RoleModerator}}, audit)

	err := a.CanModify(context.Background(), mod, "post", testEntity{author: mod}, PermPostEditOwn, PermPostEditAny)
	if err != nil {
		t.Fatalf("expected allow: %v", err)
	}
	if len(audit.records) != 0 {
		t.Fatalf("own-entity access must not be recorded as privileged")
	}
}

func TestCanModify_NoPermissionsDenied(t *testing.T) {
	owner := uuid.New()
	restricted := uuid.New()
	a := newAuthorizer(staticRoles{restricted: {RoleRestricted}}, nil)

	err := a.CanModify(context.Background(), restricted, "comment", testEntity{author: owner}, PermCommentEditOwn, PermCommentEditAny)
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
}

// Granting the wide permission can only flip a denial to an allow, never the
// reverse, holding ownership fixed.
func TestCanModify_MonotonicInWidePermission(t *testing.T) {
	owner := uuid.New()
	actor := uuid.New()
	entity := testEntity{author: owner}

	before := newAuthorizer(staticRoles{actor: {RoleUser}}, nil)
	after := newAuthorizer(staticRoles{actor: {RoleUser, RoleModerator}}, nil)

	errBefore := before.CanModify(context.Background(), actor, "post", entity, PermPostEditOwn, PermPostEditAny)
	errAfter := after.CanModify(context.Background(), actor, "post", entity, PermPostEditOwn, PermPostEditAny)

	if errBefore == nil && errAfter != nil {
		t.Fatalf("granting a wide permission revoked access")
	}
	if !errors.Is(errBefore, ErrDenied) {
		t.Fatalf("expected denial without wide permission, got %v", errBefore)
	}
	if errAfter != nil {
		t.Fatalf("expected allow with wide permission, got %v", errAfter)
	}
}

func TestCanModify_DenialNamesOnlyEntityKind(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	a := newAuthorizer(staticRoles{other: {RoleRestricted}}, nil)

	err := a.CanModify(context.Background(), other, "post", testEntity{author: owner}, PermPostEditOwn, PermPostEditAny)
	if err == nil {
		t.Fatalf("expected denial")
	}
	msg := err.Error()
	if msg != "not allowed to modify this post" {
		t.Fatalf("unexpected denial message: %q", msg)
	}
}
