package posts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Repository is the persistence contract for posts.
type Repository interface {
	Insert(ctx context.Context, p Post) error
	Get(ctx context.Context, id uuid.UUID) (Post, error)
	Update(ctx context.Context, p Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var ErrNotFound = errors.New("post not found")

// PostgresRepository stores posts in a posts table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, p Post) error {
	const q = `
INSERT INTO posts (id, user_id, title, body, hidden, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := r.db.ExecContext(ctx, q,
		p.ID,
		p.UserID,
		p.Title,
		p.Body,
		p.Hidden,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (Post, error) {
	const q = `
SELECT id, user_id, title, body, hidden, created_at, updated_at
FROM posts
WHERE id = $1
`
	var p Post
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Body,
		&p.Hidden,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p Post) error {
	const q = `
UPDATE posts
SET title = $2, body = $3, hidden = $4, updated_at = $5
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.Title, p.Body, p.Hidden, p.UpdatedAt)
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
	const q = `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
