package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post is an authored entity; the author id is what authorization decisions
// are made against.
type Post struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	Title  string    `json:"title" db:"title"`
	Body   string    `json:"body" db:"body"`
	Hidden bool      `json:"hidden" db:"hidden"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EntityID and AuthorID satisfy rbac.Authored.
func (p Post) EntityID() uuid.UUID { return p.ID }
func (p Post) AuthorID() uuid.UUID { return p.UserID }
