package rbac

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// staticRoles is a RoleSource backed by a fixed map, for tests.
type staticRoles map[uuid.UUID][]Role

func (s staticRoles) RolesForUser(ctx context.Context, userID uuid.UUID) ([]Role, error) {
	return s[userID], nil
}

func TestResolver_UnionsAcrossRoles(t *testing.T) {
	userID := uuid.New()
	r := NewResolver(staticRoles{userID: {RoleUser, RoleModerator}}, DefaultTable())

	perms, err := r.Permissions(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	table := DefaultTable()
	want := make(PermissionSet)
	for _, role := range []Role{RoleUser, RoleModerator} {
		grants, err := table.Permissions(role)
		if err != nil {
			t.Fatalf("table: %v", err)
		}
		for _, p := range grants {
			want[p] = struct{}{}
		}
	}
	if len(perms) != len(want) {
		t.Fatalf("expected %d permissions, got %d", len(want), len(perms))
	}
	for p := range want {
		if !perms.Has(p) {
			t.Fatalf("missing %s in union", p)
		}
	}
}

func TestResolver_ZeroRolesYieldsEmptySet(t *testing.T) {
	r := NewResolver(staticRoles{}, DefaultTable())

	perms, err := r.Permissions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(perms) != 0 {
		t.Fatalf("expected empty set, got %v", perms)
	}
}

func TestResolver_UnknownRoleIsAnError(t *testing.T) {
	userID := uuid.New()
	r := NewResolver(staticRoles{userID: {Role("ghost")}}, DefaultTable())

	if _, err := r.Permissions(context.Background(), userID); err == nil {
		t.Fatalf("expected error for unconfigured role")
	}
}

func TestDefaultTable_RestrictedGrantsNothing(t *testing.T) {
	grants, err := DefaultTable().Permissions(RoleRestricted)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if len(grants) != 0 {
		t.Fatalf("restricted must grant nothing, got %v", grants)
	}
}
