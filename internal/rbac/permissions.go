package rbac

import "fmt"

// Permission is an atomic granted capability. Keep these stable; they are
// part of the authorization contract.
type Permission string

const (
	PermPostCreate    Permission = "post:create"
	PermPostEditOwn   Permission = "post:edit_own"
	PermPostEditAny   Permission = "post:edit_any"
	PermPostDeleteOwn Permission = "post:delete_own"
	PermPostDeleteAny Permission = "post:delete_any"

	PermCommentCreate    Permission = "comment:create"
	PermCommentEditOwn   Permission = "comment:edit_own"
	PermCommentEditAny   Permission = "comment:edit_any"
	PermCommentDeleteOwn Permission = "comment:delete_own"
	PermCommentDeleteAny Permission = "comment:delete_any"

	PermUserManage Permission = "user:manage"
)

// Role names.
type Role string

const (
	RoleUser       Role = "user"
	RoleModerator  Role = "moderator"
	RoleAdmin      Role = "admin"
	RoleRestricted Role = "restricted"
)

// PermissionSet is the union of permissions a user holds.
type PermissionSet map[Permission]struct{}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Table is the immutable role to permission-set mapping, built once at
// process start and injected wherever permissions are resolved. No package
// global; pass it explicitly.
type Table map[Role][]Permission

// DefaultTable returns the static role grants.
//
// restricted deliberately grants nothing: the account can authenticate but
// every mutating action is denied.
func DefaultTable() Table {
	return Table{
		RoleUser: {
			PermPostCreate, PermPostEditOwn, PermPostDeleteOwn,
			PermCommentCreate, PermCommentEditOwn, PermCommentDeleteOwn,
		},
		RoleModerator: {
			PermPostCreate, PermPostEditOwn, PermPostDeleteOwn,
			PermPostEditAny, PermPostDeleteAny,
			PermCommentCreate, PermCommentEditOwn, PermCommentDeleteOwn,
			PermCommentEditAny, PermCommentDeleteAny,
		},
		RoleAdmin: {
			PermPostCreate, PermPostEditOwn, PermPostDeleteOwn,
			PermPostEditAny, PermPostDeleteAny,
			PermCommentCreate, PermCommentEditOwn, PermCommentDeleteOwn,
			PermCommentEditAny, PermCommentDeleteAny,
			PermUserManage,
		},
		RoleRestricted: {},
	}
}

// Permissions returns the grant set for a role. An unknown role is a
// configuration error, surfaced loudly rather than silently treated as empty.
func (t Table) Permissions(role Role) ([]Permission, error) {
	perms, ok := t[role]
	if !ok {
		return nil, fmt.Errorf("role %q not configured", role)
	}
	return perms, nil
}
