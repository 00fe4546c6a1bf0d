// Package cloudinary stores profile images with the Cloudinary media API.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/taskboard/task-api/internal/core/ports"
)

const DefaultFolder = "profile_images"

// ErrNotConfigured is returned when no Cloudinary credentials were supplied.
var ErrNotConfigured = errors.New("cloudinary is not configured")

// Config holds the account credentials and the destination folder.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// uploadAPI is the part of the Cloudinary SDK the uploader uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Uploader implements ports.ImageUploader.
type Uploader struct {
	api    uploadAPI
	folder string
}

// New builds an Uploader. Missing credentials yield an Uploader whose
// Upload always returns ErrNotConfigured, so the API can still start.
func New(cfg Config) (*Uploader, error) {
	folder := cfg.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return &Uploader{folder: folder}, nil
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &Uploader{api: &cld.Upload, folder: folder}, nil
}

// Upload sends the image and returns its HTTPS URL.
func (u *Uploader) Upload(ctx context.Context, img ports.ImageUpload) (string, error) {
	if u.api == nil {
		return "", ErrNotConfigured
	}

	params := uploader.UploadParams{
		Folder:       u.folder,
		ResourceType: "auto",
	}
	if name := publicID(img.Filename); name != "" {
		params.PublicID = name
	}

	res, err := u.api.Upload(ctx, img.Body, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res == nil {
		return "", errors.New("cloudinary upload: empty response")
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: response has no secure url")
	}
	return res.SecureURL, nil
}

// publicID keeps the alphanumeric part of the client filename and appends a
// short random suffix.
func publicID(filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, base)
	if base == "" || base == "." {
		return ""
	}
	return base + "_" + uuid.NewString()[:8]
}
