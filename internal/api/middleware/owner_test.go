package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/core/domain"
)

func ownerContext(caller, param string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(param)
	if caller != "" {
		c.Set(ContextUserID, caller)
	}
	return c, rec
}

func TestOwnerParam_Allows(t *testing.T) {
	c, rec := ownerContext("user-1", "user-1")

	called := false
	handler := OwnerParam("userId")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOwnerParam_RejectsOtherUser(t *testing.T) {
	for _, caller := range []string{"user-2", ""} {
		c, _ := ownerContext(caller, "user-1")

		handler := OwnerParam("userId")(func(c echo.Context) error {
			t.Fatalf("should not reach next handler")
			return nil
		})

		if err := handler(c); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("caller %q: expected ErrUserNotFound, got %v", caller, err)
		}
	}
}
