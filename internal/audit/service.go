package audit

import (
	"context"
	"errors"
	"time"

	"social-platform/internal/rbac"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// IMPORTANT:
// - Audit is internal-only. Do not expose these records to end users.
// - Callers should treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogPrivilegedAccess records a wide-permission action on an entity the actor
// does not own. Satisfies rbac.PrivilegedAccessLog; failures are swallowed so
// audit never blocks an authorized action.
func (s *Service) LogPrivilegedAccess(ctx context.Context, actorID uuid.UUID, kind string, entityID uuid.UUID, perm rbac.Permission) {
	_ = s.Append(ctx, Event{
		Type:        EventTypePrivilegedAccess,
		ActorUserID: actorID,
		EntityKind:  kind,
		EntityID:    entityID,
		Permission:  string(perm),
		Message:     "wide permission used",
	})
}

// LogAuth records an authentication lifecycle event (login, refresh, revoke).
func (s *Service) LogAuth(ctx context.Context, typ EventType, actorID uuid.UUID) error {
	return s.Append(ctx, Event{
		Type:        typ,
		ActorUserID: actorID,
	})
}
