package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" || in.Password != "secret1" {
				t.Fatalf("unexpected args: %+v", in)
			}
			return &domain.User{ID: "u1", Username: in.Username, Email: in.Email, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"username":"alice","password":"secret1","email":"alice@example.com"}`, "")

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["username"] != "alice" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password must not be returned: %+v", resp)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"username":"bob","password":"secret1","email":"bob@example.com"}`, "")

	if err := handler.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing username", `{"email":"a@example.com","password":"secret1"}`},
		{"bad email", `{"username":"a","email":"nope","password":"secret1"}`},
		{"short password", `{"username":"a","email":"a@example.com","password":"123"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			c, _ := newContext(http.MethodPost, "/auth/register", tc.body, "")
			expectHTTPError(t, NewAuthHandler(stub).Register(c), http.StatusBadRequest)
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Username: "alice", Email: email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret1"}`, "")

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["access_token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["id"] != "u1" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`, "")

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`, "")
	expectHTTPError(t, NewAuthHandler(stub).Login(c), http.StatusBadRequest)
}
