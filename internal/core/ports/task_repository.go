package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// TaskRepository persists tasks. Every lookup and mutation is filtered by
// owner together with the id; there is deliberately no id-only accessor.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound unless a task matches both id
	// and ownerID.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// Update applies patch in a single find-and-modify scoped by {id, ownerID}.
	Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	// ClearCategory unsets categoryId on the owner's tasks that reference
	// categoryID and reports how many were changed.
	ClearCategory(ctx context.Context, categoryID, ownerID string) (int64, error)
}
