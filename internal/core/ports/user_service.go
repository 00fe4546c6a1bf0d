package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// UpdateProfileInput carries optional profile changes.
type UpdateProfileInput struct {
	Username *string
	Email    *string
}

// UserService covers profile reads and mutations for the calling user.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	UploadProfileImage(ctx context.Context, userID string, img ImageUpload) (*domain.User, error)
	// ScrapeLinkedIn copies public LinkedIn fields onto the user. An auth
	// wall is not an error: the user is updated with placeholder values.
	ScrapeLinkedIn(ctx context.Context, userID, profileURL string) (*domain.User, error)
}
