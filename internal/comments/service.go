package comments

import (
	"context"
	"errors"
	"strings"
	"time"

	"social-platform/internal/rbac"

	"github.com/google/uuid"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Service provides comment operations under the same own-vs-any authorization
// rule as posts; only the permission pair differs.
type Service struct {
	repo  Repository
	authz *rbac.Authorizer
	clock func() time.Time
}

func NewService(repo Repository, authz *rbac.Authorizer) *Service {
	return &Service{repo: repo, authz: authz, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, userID, postID uuid.UUID, body string) (Comment, error) {
	if userID == uuid.Nil || postID == uuid.Nil || strings.TrimSpace(body) == "" {
		return Comment{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	c := Comment{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    userID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Comment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, userID, commentID uuid.UUID, body string) (Comment, error) {
	if strings.TrimSpace(body) == "" {
		return Comment{}, ErrInvalidArgument
	}

	c, err := s.repo.Get(ctx, commentID)
	if err != nil {
		return Comment{}, err
	}
	if err := s.authz.CanModify(ctx, userID, "comment", c, rbac.PermCommentEditOwn, rbac.PermCommentEditAny); err != nil {
		return Comment{}, err
	}

	c.Body = body
	c.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	c, err := s.repo.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.authz.CanModify(ctx, userID, "comment", c, rbac.PermCommentDeleteOwn, rbac.PermCommentDeleteAny); err != nil {
		return err
	}
	return s.repo.Delete(ctx, commentID)
}
