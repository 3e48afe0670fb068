package comments

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID     uuid.UUID `json:"id" db:"id"`
	PostID uuid.UUID `json:"post_id" db:"post_id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	Body   string    `json:"body" db:"body"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EntityID and AuthorID satisfy rbac.Authored.
func (c Comment) EntityID() uuid.UUID { return c.ID }
func (c Comment) AuthorID() uuid.UUID { return c.UserID }
