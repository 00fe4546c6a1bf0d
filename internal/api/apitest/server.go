// Package apitest runs the full HTTP stack against an in-memory SQLite
// database for integration tests.
package apitest

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/api"
	"github.com/taskboard/task-api/internal/api/handler"
	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
	"github.com/taskboard/task-api/internal/core/service"
	"github.com/taskboard/task-api/internal/infrastructure/db/sqlite"
)

// Secret signs tokens issued by test servers.
const Secret = "apitest-secret"

// ImageURL is what the fake uploader returns for every upload.
const ImageURL = "https://res.cloudinary.com/demo/image/upload/profile_images/test.png"

// Profile is what the fake scraper returns for every URL.
var Profile = domain.LinkedInProfile{
	Name:            "Alice Example",
	ProfileImageURL: "https://media.licdn.com/alice.jpg",
	CanonicalURL:    "https://www.linkedin.com/in/alice",
}

type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, img ports.ImageUpload) (string, error) {
	if _, err := io.Copy(io.Discard, img.Body); err != nil {
		return "", err
	}
	return ImageURL, nil
}

type fakeScraper struct{}

func (fakeScraper) Scrape(context.Context, string) (*domain.LinkedInProfile, error) {
	p := Profile
	return &p, nil
}

// Router builds the production router over a fresh in-memory database.
func Router(t testing.TB) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	db, err := sqlite.Open(":memory:", log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	users := sqlite.NewUserRepository(db)
	tasks := sqlite.NewTaskRepository(db)
	categories := sqlite.NewCategoryRepository(db)

	return api.NewRouter(api.Dependencies{
		Logger:          log,
		JWTSecret:       Secret,
		AuthService:     service.NewAuthService(users, Secret, time.Hour),
		UserService:     service.NewUserService(users, fakeUploader{}, fakeScraper{}, 0, log),
		TaskService:     service.NewTaskService(tasks, categories, nil, log),
		CategoryService: service.NewCategoryService(categories, tasks, nil, log),
		HealthChecks: map[string]handler.Checker{
			"sqlite": func(context.Context) error { return sqlite.Ping(db) },
		},
		Metrics: prometheus.NewRegistry(),
	})
}

// NewServer starts Router on a loopback listener and closes it with the test.
func NewServer(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(Router(t))
	t.Cleanup(srv.Close)
	return srv
}
