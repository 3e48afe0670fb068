package comments

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, c Comment) error
	Get(ctx context.Context, id uuid.UUID) (Comment, error)
	Update(ctx context.Context, c Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var ErrNotFound = errors.New("comment not found")

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, c Comment) error {
	const q = `
INSERT INTO comments (id, post_id, user_id, body, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
	_, err := r.db.ExecContext(ctx, q,
		c.ID,
		c.PostID,
		c.UserID,
		c.Body,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (Comment, error) {
	const q = `
SELECT id, post_id, user_id, body, created_at, updated_at
FROM comments
WHERE id = $1
`
	var c Comment
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID,
		&c.PostID,
		&c.UserID,
		&c.Body,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Comment{}, ErrNotFound
		}
		return Comment{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c Comment) error {
	const q = `
UPDATE comments
SET body = $2, updated_at = $3
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, c.ID, c.Body, c.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM comments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
