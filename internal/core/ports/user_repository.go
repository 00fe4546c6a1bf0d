package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create stores a new user. Returns domain.ErrEmailTaken or
	// domain.ErrUsernameTaken when a unique field collides.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update applies patch and returns the stored user after the change.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}
