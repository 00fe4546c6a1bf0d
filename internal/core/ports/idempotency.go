package ports

import "context"

// IdempotencyStore maps a client-supplied idempotency key to the record it
// produced. Scope separates owners and entity kinds.
//
// A create first calls Reserve. Only the caller that gets claimed=true may
// insert; it then calls Complete with the new id, or Release if the insert
// failed. Other callers get the finished id, or "" while the claim is still
// pending.
type IdempotencyStore interface {
	Reserve(ctx context.Context, scope, key string) (id string, claimed bool, err error)
	Complete(ctx context.Context, scope, key, id string) error
	Release(ctx context.Context, scope, key string) error
}
