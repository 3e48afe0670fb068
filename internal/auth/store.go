package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore maps an opaque refresh token to its owning user id with a TTL.
// All operations are single-key and atomic on the backing store.
//
// Get and Take return ErrUnauthorized for an absent or expired token; the two
// cases are indistinguishable to the caller. Any backing-store failure is
// returned wrapping ErrStoreUnavailable instead, so an outage is never
// mistaken for a logout.
type TokenStore interface {
	// Put upserts the token; calling it twice with the same arguments is safe.
	Put(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error

	Get(ctx context.Context, token string) (uuid.UUID, error)

	// Take atomically reads and deletes the token. Rotation uses it so that
	// of two racing spenders exactly one succeeds; the loser observes
	// ErrUnauthorized.
	Take(ctx context.Context, token string) (uuid.UUID, error)

	// Delete is idempotent; deleting an absent token is a no-op.
	Delete(ctx context.Context, token string) error
}

const refreshKeyPrefix = "refresh:"

// RedisTokenStore is the production TokenStore over a shared Redis instance.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Put(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKeyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisTokenStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return parseStoredUser(val)
}

func (s *RedisTokenStore) Take(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return parseStoredUser(val)
}

func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, refreshKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func parseStoredUser(val string) (uuid.UUID, error) {
	userID, err := uuid.Parse(val)
	if err != nil {
		// Stored value is corrupt; treat as an issuance bug, not a client error.
		return uuid.Nil, ErrMalformedIdentity
	}
	return userID, nil
}
