package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

type CreateCategoryInput struct {
	Name           string
	Description    string
	OwnerID        string
	IdempotencyKey string
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// CategoryService defines owner-scoped category use cases.
type CategoryService interface {
	Create(ctx context.Context, in CreateCategoryInput) (*CreateResult[domain.Category], error)
	List(ctx context.Context, ownerID string) (*ListResult[domain.Category], error)
	Get(ctx context.Context, id, ownerID string) (*domain.Category, error)
	Update(ctx context.Context, id, ownerID string, in UpdateCategoryInput) (*domain.Category, error)
	// Delete removes the category and unsets it on the owner's tasks.
	Delete(ctx context.Context, id, ownerID string) (*DeleteResult, error)
}
