// Package linkedin reads public LinkedIn profile pages with a headless Chrome.
package linkedin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/core/domain"
)

const (
	DefaultTimeout = 45 * time.Second

	nameSelector  = "h1"
	imageSelector = "img.pv-top-card-profile-picture__image"
	unknownName   = "N/A"
)

// Scraper implements ports.ProfileScraper. Each call starts a fresh browser.
type Scraper struct {
	timeout   time.Duration
	allocOpts []chromedp.ExecAllocatorOption
	logger    zerolog.Logger
}

func NewScraper(timeout time.Duration, logger zerolog.Logger) *Scraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.DisableGPU, chromedp.NoSandbox)
	return &Scraper{timeout: timeout, allocOpts: opts, logger: logger}
}

// Scrape loads profileURL and extracts the display name, the avatar and the
// final URL after redirects. A redirect to LinkedIn's sign-in page yields
// domain.ErrAuthWall.
func (s *Scraper) Scrape(ctx context.Context, profileURL string) (*domain.LinkedInProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var location string
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(profileURL),
		chromedp.Location(&location),
	); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", profileURL, err)
	}

	if isAuthWall(location) {
		s.logger.Debug().Str("url", profileURL).Str("location", location).Msg("redirected to auth wall")
		return nil, domain.ErrAuthWall
	}

	var name, imageURL string
	if err := chromedp.Run(browserCtx,
		chromedp.WaitVisible(nameSelector, chromedp.ByQuery),
		chromedp.Text(nameSelector, &name, chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf(`document.querySelector(%q)?.getAttribute("src") ?? ""`, imageSelector), &imageURL),
		chromedp.Location(&location),
	); err != nil {
		return nil, fmt.Errorf("extract profile: %w", err)
	}

	return buildProfile(name, imageURL, location), nil
}

func isAuthWall(location string) bool {
	return strings.Contains(strings.ToLower(location), "authwall")
}

func buildProfile(name, imageURL, location string) *domain.LinkedInProfile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = unknownName
	}
	return &domain.LinkedInProfile{
		Name:            name,
		ProfileImageURL: strings.TrimSpace(imageURL),
		CanonicalURL:    location,
	}
}
