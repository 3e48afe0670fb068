package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service orchestrates token issuance, rotation, revocation and identity
// extraction. It is the only entry point the rest of the application uses for
// authentication.
//
// Refresh tokens rotate: every successful refresh consumes the presented
// token and issues a replacement. A stale token presented twice fails the
// second caller.
type Service struct {
	manager *Manager
	store   TokenStore
}

func NewService(manager *Manager, store TokenStore) *Service {
	return &Service{manager: manager, store: store}
}

// AccessToken issues a bare access token for userID without touching the
// store. Extra claims are optional.
func (s *Service) AccessToken(now time.Time, userID uuid.UUID, extra []Claim) (string, error) {
	return s.manager.IssueAccessToken(now, userID, extra)
}

// IssuePair creates an access token and a refresh token for userID and
// persists the refresh token. One store write, no other side effects.
func (s *Service) IssuePair(ctx context.Context, now time.Time, userID uuid.UUID) (TokenPair, error) {
	access, err := s.manager.IssueAccessToken(now, userID, nil)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.manager.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.store.Put(ctx, refresh, userID, s.manager.RefreshTTL()); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a presented refresh token for a fresh pair, returning the
// resolved user alongside it. The presented token is consumed atomically, so
// a double-spend race fails the second caller with ErrUnauthorized. Store
// outages propagate as ErrStoreUnavailable and leave the presented token
// untouched.
func (s *Service) Refresh(ctx context.Context, now time.Time, presented string) (TokenPair, uuid.UUID, error) {
	if strings.TrimSpace(presented) == "" {
		return TokenPair{}, uuid.Nil, fmt.Errorf("%w: refresh token is missing", ErrUnauthorized)
	}

	userID, err := s.store.Take(ctx, presented)
	if err != nil {
		return TokenPair{}, uuid.Nil, err
	}

	pair, err := s.IssuePair(ctx, now, userID)
	if err != nil {
		// The old token is already consumed; the client must log in again.
		// Acceptable: failing closed never extends a session.
		return TokenPair{}, uuid.Nil, err
	}
	return pair, userID, nil
}

// Revoke deletes the presented refresh token. Revoking a token that is
// already gone is not an error; only presenting nothing at all is.
func (s *Service) Revoke(ctx context.Context, presented string) error {
	if strings.TrimSpace(presented) == "" {
		return fmt.Errorf("%w: refresh token is missing", ErrUnauthorized)
	}
	return s.store.Delete(ctx, presented)
}

// IdentityFromHeader extracts and verifies the bearer access token from an
// Authorization header value. An absent or malformed header maps to
// ErrUnauthorized; a valid token with a broken subject surfaces as
// ErrMalformedIdentity for the caller to log loudly.
func (s *Service) IdentityFromHeader(header string, now time.Time) (Identity, error) {
	raw := strings.TrimSpace(header)
	if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
		return Identity{}, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}
	return s.manager.VerifyAccessToken(strings.TrimPrefix(raw, bearerPrefix), now)
}
