package rbac

import (
	"context"

	"github.com/google/uuid"
)

// RoleSource supplies the current role set for a user. The Postgres
// implementation lives with the user repository.
type RoleSource interface {
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]Role, error)
}

// Resolver computes the permission set a user holds: the union of the
// configured grants of all held roles. It is a pure read over the role source
// and the static table; no caching, evaluated fresh at every query.
type Resolver struct {
	roles RoleSource
	table Table
}

func NewResolver(roles RoleSource, table Table) *Resolver {
	return &Resolver{roles: roles, table: table}
}

// Permissions resolves the user's permission set. A user with zero roles gets
// an empty set, not an error. Duplicates across roles collapse.
func (r *Resolver) Permissions(ctx context.Context, userID uuid.UUID) (PermissionSet, error) {
	roles, err := r.roles.RolesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := make(PermissionSet)
	for _, role := range roles {
		perms, err := r.table.Permissions(role)
		if err != nil {
			return nil, err
		}
		for _, p := range perms {
			set[p] = struct{}{}
		}
	}
	return set, nil
}
