package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	// claimTTL bounds how long a crashed request can hold a key.
	claimTTL = time.Minute

	pendingMarker = "pending"
)

// IdempotencyStore remembers which record a client-supplied Idempotency-Key
// produced. Key format: idem:<scope>:<key>
type IdempotencyStore struct {
	client   *redis.Client
	ttl      time.Duration
	claimTTL time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, claimTTL: claimTTL}
}

// Reserve claims key with SET NX. A caller that loses the claim gets the
// stored record id, or "" while the winner has not completed.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (string, bool, error) {
	k := s.key(scope, key)
	// Two rounds cover a claim that expires between SETNX and GET.
	for range 2 {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, s.claimTTL).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return "", true, nil
		}

		v, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if v == pendingMarker {
			return "", false, nil
		}
		return v, false, nil
	}
	return "", false, nil
}

// Complete replaces the claim with the id of the created record.
func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, id string) error {
	if err := s.client.Set(ctx, s.key(scope, key), id, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a claim whose create failed so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
