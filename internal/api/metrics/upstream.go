package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

type timedUploader struct {
	next ports.ImageUploader
}

// TimeUploader records UpstreamDuration{upstream="cloudinary"} around every upload.
func TimeUploader(next ports.ImageUploader) ports.ImageUploader {
	return &timedUploader{next: next}
}

func (t *timedUploader) Upload(ctx context.Context, img ports.ImageUpload) (string, error) {
	start := time.Now()
	url, err := t.next.Upload(ctx, img)
	UpstreamDuration.WithLabelValues("cloudinary", Result(err)).Observe(time.Since(start).Seconds())
	return url, err
}

type timedScraper struct {
	next ports.ProfileScraper
}

// TimeScraper records UpstreamDuration{upstream="linkedin"} around every scrape.
// An auth wall counts as a success: the page loaded.
func TimeScraper(next ports.ProfileScraper) ports.ProfileScraper {
	return &timedScraper{next: next}
}

func (t *timedScraper) Scrape(ctx context.Context, profileURL string) (*domain.LinkedInProfile, error) {
	start := time.Now()
	profile, err := t.next.Scrape(ctx, profileURL)
	result := Result(err)
	if errors.Is(err, domain.ErrAuthWall) {
		result = "success"
	}
	UpstreamDuration.WithLabelValues("linkedin", result).Observe(time.Since(start).Seconds())
	return profile, err
}
