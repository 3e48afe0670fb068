package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"social-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// refreshTokenBytes gives 256 bits of entropy; refresh tokens are opaque
// bearer credentials, so unguessability is all that matters.
const refreshTokenBytes = 32

const clockSkewLeeway = 30 * time.Second

// Manager issues and verifies access tokens and mints opaque refresh tokens.
// The signing secret is immutable after construction.
type Manager struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		audience:   cfg.JWTAudience,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (m *Manager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL reports the configured refresh-token lifetime; the store applies
// it as the key TTL.
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken signs an access token for userID expiring at now+accessTTL.
// Extra claims are optional and rarely needed; the subject is the only claim
// required downstream.
func (m *Manager) IssueAccessToken(now time.Time, userID uuid.UUID, extra []Claim) (string, error) {
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			Audience:  audienceOrNil(m.audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			ID:        uuid.NewString(),
		},
	}
	if len(extra) > 0 {
		claims.Extra = make(map[string]string, len(extra))
		for _, c := range extra {
			claims.Extra[c.Type] = c.Value
		}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// NewRefreshToken mints an opaque random refresh token. It carries no claims;
// the server-side store holds the user association.
func (m *Manager) NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("refresh token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// VerifyAccessToken checks signature, expiry and (when configured) issuer and
// audience, then extracts the identity. The caller-supplied now is the
// authoritative verification time; expiry and issued-at are judged against it
// with the skew leeway, never against the wall clock. Every parse or
// validation failure maps to ErrUnauthorized so no library internals leak to
// the caller. A token that validates but has a missing or non-UUID subject
// maps to ErrMalformedIdentity.
func (m *Manager) VerifyAccessToken(tokenString string, now time.Time) (Identity, error) {
	var claims accessClaims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(clockSkewLeeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	parser := jwt.NewParser(opts...)
	if _, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return Identity{}, ErrUnauthorized
	}

	if claims.Subject == "" {
		return Identity{}, ErrMalformedIdentity
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrMalformedIdentity
	}

	id := Identity{UserID: userID}
	for typ, val := range claims.Extra {
		id.Extra = append(id.Extra, Claim{Type: typ, Value: val})
	}
	return id, nil
}

func audienceOrNil(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}
