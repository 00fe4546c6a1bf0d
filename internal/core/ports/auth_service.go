package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed access token for the user owning email.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
