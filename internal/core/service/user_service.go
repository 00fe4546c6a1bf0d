package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

// DefaultMaxImageBytes caps profile image uploads at 5 MiB.
const DefaultMaxImageBytes int64 = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type UserService struct {
	repo          ports.UserRepository
	uploader      ports.ImageUploader
	scraper       ports.ProfileScraper
	logger        zerolog.Logger
	maxImageBytes int64
}

func NewUserService(repo ports.UserRepository, uploader ports.ImageUploader, scraper ports.ProfileScraper, maxImageBytes int64, logger zerolog.Logger) *UserService {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &UserService{
		repo:          repo,
		uploader:      uploader,
		scraper:       scraper,
		logger:        logger,
		maxImageBytes: maxImageBytes,
	}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	patch := domain.UserPatch{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
		}
		patch.Username = &username
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !validEmail(email) {
			return nil, fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
		}
		patch.Email = &email
	}

	if patch.Empty() {
		return s.repo.FindByID(ctx, userID)
	}
	return s.repo.Update(ctx, userID, patch)
}

// UploadProfileImage forwards the image to the host and stores the returned
// URL on the user.
func (s *UserService) UploadProfileImage(ctx context.Context, userID string, img ports.ImageUpload) (*domain.User, error) {
	if img.Body == nil {
		return nil, domain.ErrNoFile
	}
	if err := s.validateImage(img); err != nil {
		return nil, err
	}

	// Fail before the upload so an unknown user does not leave an orphaned image.
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	imageURL, err := s.uploader.Upload(ctx, img)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("image upload failed")
		return nil, fmt.Errorf("%w: upload profile image: %v", domain.ErrUpstream, err)
	}

	updated, err := s.repo.Update(ctx, userID, domain.UserPatch{ProfileImage: &imageURL})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile image updated")
	return updated, nil
}

func (s *UserService) validateImage(img ports.ImageUpload) error {
	if img.Size > s.maxImageBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidImage, s.maxImageBytes)
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(img.ContentType, ";")[0]))
	if _, ok := allowedImageTypes[contentType]; !ok {
		return fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidImage, img.ContentType)
	}
	return nil
}

// ScrapeLinkedIn runs the scraper synchronously and copies what it found
// onto the user.
func (s *UserService) ScrapeLinkedIn(ctx context.Context, userID, profileURL string) (*domain.User, error) {
	profileURL = strings.TrimSpace(profileURL)
	if profileURL == "" {
		return nil, domain.ErrMissingLinkedInURL
	}
	if u, err := url.Parse(profileURL); err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: linkedin url must be absolute", domain.ErrInvalidInput)
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.scraper.Scrape(ctx, profileURL)
	switch {
	case errors.Is(err, domain.ErrAuthWall):
		s.logger.Warn().Str("user_id", userID).Str("url", profileURL).Msg("linkedin auth wall, storing placeholder")
		profile = &domain.LinkedInProfile{
			Name:         domain.AuthWallName,
			CanonicalURL: profileURL,
		}
	case err != nil:
		s.logger.Error().Err(err).Str("user_id", userID).Msg("linkedin scrape failed")
		return nil, fmt.Errorf("%w: scrape linkedin profile: %v", domain.ErrUpstream, err)
	}

	return s.repo.Update(ctx, userID, domain.UserPatch{
		LinkedInURL:          &profileURL,
		LinkedInName:         &profile.Name,
		LinkedInProfileURL:   &profile.CanonicalURL,
		LinkedInProfileImage: &profile.ProfileImageURL,
	})
}
