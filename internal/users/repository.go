package users

import (
	"context"
	"database/sql"
	"errors"

	"social-platform/internal/rbac"
	"social-platform/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository is the persistence contract for accounts and role membership.
// RolesForUser satisfies rbac.RoleSource so the permission resolver reads the
// live role set at query time.
type Repository interface {
	Create(ctx context.Context, u User, roles ...rbac.Role) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]rbac.Role, error)
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// PostgresRepository reads accounts from Postgres.
//
// Assumed tables:
// - users (id, email, display_name, password_hash, created_at)
// - user_roles (user_id, role), many-to-many via role name
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account and its role rows in one transaction, so a user
// never exists without role membership.
func (r *PostgresRepository) Create(ctx context.Context, u User, roles ...rbac.Role) error {
	err := utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const insertUser = `
INSERT INTO users (id, email, display_name, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)
`
		if _, err := tx.ExecContext(ctx, insertUser, u.ID, u.Email, u.DisplayName, u.PasswordHash, u.CreatedAt); err != nil {
			return err
		}

		const insertRole = `
INSERT INTO user_roles (user_id, role)
VALUES ($1, $2)
`
		for _, role := range roles {
			if _, err := tx.ExecContext(ctx, insertRole, u.ID, string(role)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, email, display_name, password_hash, created_at
FROM users
WHERE email = $1
`
	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	const q = `
SELECT id, email, display_name, password_hash, created_at
FROM users
WHERE id = $1
`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (User, error) {
	var u User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) RolesForUser(ctx context.Context, userID uuid.UUID) ([]rbac.Role, error) {
	const q = `
SELECT role
FROM user_roles
WHERE user_id = $1
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []rbac.Role
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, rbac.Role(role))
	}
	return roles, rows.Err()
}
