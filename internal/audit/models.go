package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable, append-only audit log record.
//
// Invariants:
// - Events are never updated or deleted.
// - Actor capture is best-effort; do not block critical flows on audit failures.
//
// Storage recommendation (Postgres):
// - Table audit_events with an INSERT-only policy.
// - Optional: trigger to prevent UPDATE/DELETE.
type Event struct {
	ID uuid.UUID `json:"id" db:"id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the authenticated user causing the event (if applicable).
	ActorUserID uuid.UUID `json:"actor_user_id,omitempty" db:"actor_user_id"`

	// EntityKind and EntityID identify the target of a privileged action.
	EntityKind string    `json:"entity_kind,omitempty" db:"entity_kind"`
	EntityID   uuid.UUID `json:"entity_id,omitempty" db:"entity_id"`

	// Permission is the wide permission that authorized a privileged action.
	Permission string `json:"permission,omitempty" db:"permission"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypePrivilegedAccess EventType = "privileged_access"
	EventTypeLogin            EventType = "login"
	EventTypeTokenRefresh     EventType = "token_refresh"
	EventTypeTokenRevoke      EventType = "token_revoke"
)
