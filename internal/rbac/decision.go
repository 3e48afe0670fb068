package rbac

import (
	"context"
	"errors"
	"fmt"

	"social-platform/pkg/logger"

	"github.com/google/uuid"
)

// ErrDenied is the uniform authorization failure. Its message names the
// entity kind and nothing else: not the owner, not the missing permission.
var ErrDenied = errors.New("not allowed")

// Authored is the trait an entity needs to be the subject of an own-vs-any
// decision: its own id for the audit trail and its author for ownership.
type Authored interface {
	EntityID() uuid.UUID
	AuthorID() uuid.UUID
}

// PrivilegedAccessLog records uses of wide permissions against entities the
// actor does not own. Best-effort; a nil log disables it.
type PrivilegedAccessLog interface {
	LogPrivilegedAccess(ctx context.Context, actorID uuid.UUID, kind string, entityID uuid.UUID, perm Permission)
}

// Authorizer evaluates the own-vs-any decision for any authored entity. The
// decision is re-evaluated fresh on every mutating call; permissions are
// never cached across calls.
type Authorizer struct {
	resolver *Resolver
	audit    PrivilegedAccessLog
}

func NewAuthorizer(resolver *Resolver, audit PrivilegedAccessLog) *Authorizer {
	return &Authorizer{resolver: resolver, audit: audit}
}

// CanModify decides whether userID may act on entity:
//   - wide permission held: allow unconditionally (logged as privileged access
//     when the actor is not the author)
//   - own permission held and the actor authored the entity: allow
//   - otherwise: deny with ErrDenied naming only the entity kind
func (a *Authorizer) CanModify(ctx context.Context, userID uuid.UUID, kind string, entity Authored, own, wide Permission) error {
	perms, err := a.resolver.Permissions(ctx, userID)
	if err != nil {
		return err
	}

	if perms.Has(wide) {
		if entity.AuthorID() != userID {
			logger.From(ctx).Info("privileged access",
				"actor", userID.String(),
				"entity", kind,
				"entity_id", entity.EntityID().String(),
				"permission", string(wide),
			)
			if a.audit != nil {
				a.audit.LogPrivilegedAccess(ctx, userID, kind, entity.EntityID(), wide)
			}
		}
		return nil
	}

	if perms.Has(own) && entity.AuthorID() == userID {
		return nil
	}

	return fmt.Errorf("%w to modify this %s", ErrDenied, kind)
}
