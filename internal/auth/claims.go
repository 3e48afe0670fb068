package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claim is an explicit extra fact embedded into an access token beyond the
// subject. Most tokens carry none.
type Claim struct {
	Type  string
	Value string
}

// Identity is the strongly typed result of access-token validation. The
// embedded user id is authoritative for the request. Identities are built at
// validation time, consumed immediately and never persisted.
type Identity struct {
	UserID uuid.UUID
	Extra  []Claim
}

// accessClaims is the wire shape of an access token. The subject registered
// claim carries the user id; extra claims ride in a flat string map.
type accessClaims struct {
	jwt.RegisteredClaims

	Extra map[string]string `json:"extra,omitempty"`
}
