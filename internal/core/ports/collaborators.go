package ports

import (
	"context"
	"io"

	"github.com/taskboard/task-api/internal/core/domain"
)

// ImageUpload is a file received from the client, ready to forward.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageUploader stores an image with a third-party host and returns its
// public URL.
type ImageUploader interface {
	Upload(ctx context.Context, img ImageUpload) (string, error)
}

// ProfileScraper extracts public profile fields. It returns
// domain.ErrAuthWall when the page requires a sign-in.
type ProfileScraper interface {
	Scrape(ctx context.Context, profileURL string) (*domain.LinkedInProfile, error)
}
