package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends events to an insert-only audit_events table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, type, actor_user_id, entity_kind, entity_id, permission, message, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.Type,
		e.ActorUserID,
		e.EntityKind,
		e.EntityID,
		e.Permission,
		e.Message,
		e.CreatedAt,
	)
	return err
}
