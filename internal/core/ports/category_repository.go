package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// CategoryRepository persists categories, always scoped by owner.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Category, error)
	Update(ctx context.Context, id, ownerID string, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id, ownerID string) error
}
