package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/middleware"
	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubTaskService struct {
	createFn func(ctx context.Context, in ports.CreateTaskInput) (*ports.CreateResult[domain.Task], error)
	listFn   func(ctx context.Context, ownerID string) (*ports.ListResult[domain.Task], error)
	getFn    func(ctx context.Context, id, ownerID string) (*domain.Task, error)
	updateFn func(ctx context.Context, id, ownerID string, in ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, id, ownerID string) (*ports.DeleteResult, error)
}

func (s *stubTaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*ports.CreateResult[domain.Task], error) {
	return s.createFn(ctx, in)
}

func (s *stubTaskService) List(ctx context.Context, ownerID string) (*ports.ListResult[domain.Task], error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubTaskService) Get(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return s.getFn(ctx, id, ownerID)
}

func (s *stubTaskService) Update(ctx context.Context, id, ownerID string, in ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, id, ownerID, in)
}

func (s *stubTaskService) Delete(ctx context.Context, id, ownerID string) (*ports.DeleteResult, error) {
	return s.deleteFn(ctx, id, ownerID)
}

type stubCategoryService struct {
	createFn func(ctx context.Context, in ports.CreateCategoryInput) (*ports.CreateResult[domain.Category], error)
	listFn   func(ctx context.Context, ownerID string) (*ports.ListResult[domain.Category], error)
	getFn    func(ctx context.Context, id, ownerID string) (*domain.Category, error)
	updateFn func(ctx context.Context, id, ownerID string, in ports.UpdateCategoryInput) (*domain.Category, error)
	deleteFn func(ctx context.Context, id, ownerID string) (*ports.DeleteResult, error)
}

func (s *stubCategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*ports.CreateResult[domain.Category], error) {
	return s.createFn(ctx, in)
}

func (s *stubCategoryService) List(ctx context.Context, ownerID string) (*ports.ListResult[domain.Category], error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubCategoryService) Get(ctx context.Context, id, ownerID string) (*domain.Category, error) {
	return s.getFn(ctx, id, ownerID)
}

func (s *stubCategoryService) Update(ctx context.Context, id, ownerID string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	return s.updateFn(ctx, id, ownerID, in)
}

func (s *stubCategoryService) Delete(ctx context.Context, id, ownerID string) (*ports.DeleteResult, error) {
	return s.deleteFn(ctx, id, ownerID)
}

type stubUserService struct {
	profileFn func(ctx context.Context, userID string) (*domain.User, error)
	updateFn  func(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error)
	uploadFn  func(ctx context.Context, userID string, img ports.ImageUpload) (*domain.User, error)
	scrapeFn  func(ctx context.Context, userID, profileURL string) (*domain.User, error)
}

func (s *stubUserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, userID, in)
}

func (s *stubUserService) UploadProfileImage(ctx context.Context, userID string, img ports.ImageUpload) (*domain.User, error) {
	return s.uploadFn(ctx, userID, img)
}

func (s *stubUserService) ScrapeLinkedIn(ctx context.Context, userID, profileURL string) (*domain.User, error) {
	return s.scrapeFn(ctx, userID, profileURL)
}

// newContext builds an echo context with the validator installed. A
// non-empty caller is stored the way the Auth middleware does it.
func newContext(method, target, body, caller string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != "" {
		c.Set(middleware.ContextUserID, caller)
	}
	return c, rec
}

// withID sets the :id path parameter.
func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

// expectHTTPError fails unless err is an *echo.HTTPError with the given code.
func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}
