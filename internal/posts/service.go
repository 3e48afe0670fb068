package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	"social-platform/internal/rbac"

	"github.com/google/uuid"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Service provides post operations. Every mutating call on an existing post
// goes through the own-vs-any authorization decision first; the check is
// evaluated fresh each time, never cached.
type Service struct {
	repo  Repository
	authz *rbac.Authorizer
	clock func() time.Time
}

func NewService(repo Repository, authz *rbac.Authorizer) *Service {
	return &Service{repo: repo, authz: authz, clock: time.Now}
}

type CreateRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type UpdateRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Create stores a new post authored by userID. The create permission is
// enforced at the route level; there is no ownership dimension yet.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (Post, error) {
	if userID == uuid.Nil || strings.TrimSpace(req.Title) == "" {
		return Post{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	p := Post{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Post, error) {
	return s.repo.Get(ctx, id)
}

// Update edits a post if the caller owns it or holds the edit-any permission.
func (s *Service) Update(ctx context.Context, userID, postID uuid.UUID, req UpdateRequest) (Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return Post{}, ErrInvalidArgument
	}

	p, err := s.repo.Get(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if err := s.authz.CanModify(ctx, userID, "post", p, rbac.PermPostEditOwn, rbac.PermPostEditAny); err != nil {
		return Post{}, err
	}

	p.Title = req.Title
	p.Body = req.Body
	p.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// SetHidden changes post visibility under the same own-vs-any rule as edits.
func (s *Service) SetHidden(ctx context.Context, userID, postID uuid.UUID, hidden bool) (Post, error) {
	p, err := s.repo.Get(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if err := s.authz.CanModify(ctx, userID, "post", p, rbac.PermPostEditOwn, rbac.PermPostEditAny); err != nil {
		return Post{}, err
	}

	p.Hidden = hidden
	p.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// Delete removes a post if the caller owns it or holds the delete-any
// permission.
func (s *Service) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := s.repo.Get(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.authz.CanModify(ctx, userID, "post", p, rbac.PermPostDeleteOwn, rbac.PermPostDeleteAny); err != nil {
		return err
	}
	return s.repo.Delete(ctx, postID)
}
