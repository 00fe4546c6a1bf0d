package ports

import (
	"context"
	"time"

	"github.com/taskboard/task-api/internal/core/domain"
)

// CreateTaskInput is the DTO passed from the transport layer to TaskService.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
	Status      string // empty = pending
	CategoryID  string // optional
	OwnerID     string
	// IdempotencyKey, when set, makes a retried create return the record
	// produced by the first attempt.
	IdempotencyKey string
}

// UpdateTaskInput holds a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
	Status      *string
	CategoryID  *string
}

// CreateResult wraps a created record. Replayed is true when an idempotency
// key matched an earlier create.
type CreateResult[T any] struct {
	Record   *T
	Replayed bool
}

// ListResult is the list response shape. Message is set only when Data is
// empty and is informational, not an error.
type ListResult[T any] struct {
	Data    []*T
	Message string
}

// DeleteResult confirms a hard delete.
type DeleteResult struct {
	Message string
}

// TaskService defines owner-scoped task use cases.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*CreateResult[domain.Task], error)
	List(ctx context.Context, ownerID string) (*ListResult[domain.Task], error)
	Get(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Update(ctx context.Context, id, ownerID string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) (*DeleteResult, error)
}
