package auth

import "errors"

// Error taxonomy. Callers branch with errors.Is; none of these carry
// library internals or secrets in their text.
var (
	// ErrUnauthorized covers every missing, invalid, expired or unknown
	// credential. A token that was never issued and a token that expired are
	// indistinguishable to the caller.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedIdentity means a token passed signature and expiry checks
	// but its subject claim is missing or not a valid user id. That is a
	// token issuance bug, not a client error; log it at Error level.
	ErrMalformedIdentity = errors.New("malformed identity in token")

	// ErrStoreUnavailable is a transient backing-store failure. It must never
	// be conflated with ErrUnauthorized: an outage is not a logout.
	ErrStoreUnavailable = errors.New("token store unavailable")
)
