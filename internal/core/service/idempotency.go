package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

func idempotencyScope(kind, ownerID string) string {
	return kind + ":" + ownerID
}

// keyedCreate is one create that may carry an idempotency key.
type keyedCreate[T any] struct {
	idem   ports.IdempotencyStore
	logger zerolog.Logger
	scope  string
	key    string

	find   func(ctx context.Context, id string) (*T, error)
	insert func(ctx context.Context) (*T, error)
	idOf   func(*T) string
}

// run inserts at most once per key. The key is claimed before the insert, so
// a concurrent duplicate either replays the finished record or fails with
// ErrRequestInFlight.
func (c keyedCreate[T]) run(ctx context.Context) (*ports.CreateResult[T], error) {
	if c.key == "" || c.idem == nil {
		return c.insertOnly(ctx)
	}

	id, claimed, err := c.idem.Reserve(ctx, c.scope, c.key)
	if err != nil {
		c.logger.Warn().Err(err).Str("idempotency_key", c.key).Msg("idempotency reserve failed, creating anyway")
		return c.insertOnly(ctx)
	}

	if !claimed {
		if id == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrRequestInFlight, c.key)
		}
		existing, err := c.find(ctx, id)
		if err == nil {
			c.logger.Info().Str("idempotency_key", c.key).Str("record_id", id).Msg("idempotent replay")
			return &ports.CreateResult[T]{Record: existing, Replayed: true}, nil
		}
		// The original record was deleted since; the key now points at the
		// replacement.
		c.logger.Info().Err(err).Str("idempotency_key", c.key).Msg("replayed record is gone, creating again")
	}

	created, err := c.insert(ctx)
	if err != nil {
		if claimed {
			if rerr := c.idem.Release(ctx, c.scope, c.key); rerr != nil {
				c.logger.Warn().Err(rerr).Str("idempotency_key", c.key).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if err := c.idem.Complete(ctx, c.scope, c.key, c.idOf(created)); err != nil {
		c.logger.Warn().Err(err).Str("record_id", c.idOf(created)).Msg("failed to store idempotency key")
	}
	return &ports.CreateResult[T]{Record: created}, nil
}

func (c keyedCreate[T]) insertOnly(ctx context.Context) (*ports.CreateResult[T], error) {
	created, err := c.insert(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.CreateResult[T]{Record: created}, nil
}
