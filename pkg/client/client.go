// Package client is a typed Go client for the task board API. It keeps the
// bearer token in memory after Login and attaches it to every request.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultTimeout = 60 * time.Second

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client talks to one API base URL. It is safe for concurrent use.
type Client struct {
	rc  *resty.Client
	log zerolog.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		baseURL := c.rc.BaseURL
		c.rc = resty.NewWithClient(hc).SetBaseURL(baseURL)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.rc.SetTimeout(d) }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithToken starts the client with an existing access token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		rc:  resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rc.
		SetTimeout(timeoutOrDefault(c.rc.GetClient().Timeout)).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if token := c.Token(); token != "" {
				r.SetAuthToken(token)
			}
			return nil
		})
	return c
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}

// Token returns the current access token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Logout forgets the access token. The API keeps no session, so nothing is
// sent.
func (c *Client) Logout() {
	c.setToken("")
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and keeps the returned token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, nil); err != nil {
		return nil, err
	}
	c.setToken(out.AccessToken)
	return &out, nil
}

// ── Users ────────────────────────────────────────────────────────────────────

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (*User, error) {
	var out mutationResponse
	if err := c.do(ctx, http.MethodPatch, "/users/profile", in, &out, nil); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UploadProfileImage sends the image as the multipart field "file" and
// returns the hosted URL.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, image io.Reader) (string, error) {
	var out mutationResponse
	var apiErr errorBody
	resp, err := c.rc.R().
		SetContext(ctx).
		SetFileReader("file", filename, image).
		SetResult(&out).
		SetError(&apiErr).
		Post("/users/profile/upload")
	if err := c.check(resp, err, &apiErr); err != nil {
		return "", err
	}
	return out.ProfileImage, nil
}

// ScrapeLinkedIn copies public LinkedIn fields onto the caller's profile.
// userID must be the caller's own id.
func (c *Client) ScrapeLinkedIn(ctx context.Context, userID, linkedInURL string) (*User, error) {
	var out mutationResponse
	body := map[string]string{"linkedInUrl": linkedInURL}
	if err := c.do(ctx, http.MethodPost, "/users/linkedin/scrape/"+url.PathEscape(userID), body, &out, nil); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ── Tasks ────────────────────────────────────────────────────────────────────

func (c *Client) ListTasks(ctx context.Context) (*List[Task], error) {
	var out List[Task]
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, in TaskInput) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &out, idempotencyHeader(in.IdempotencyKey)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in TaskUpdate) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask returns the server's confirmation message.
func (c *Client) DeleteTask(ctx context.Context, id string) (string, error) {
	var out message
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ── Categories ───────────────────────────────────────────────────────────────

func (c *Client) ListCategories(ctx context.Context) (*List[Category], error) {
	var out List[Category]
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPost, "/categories", in, &out, idempotencyHeader(in.IdempotencyKey)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryUpdate) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPatch, "/categories/"+url.PathEscape(id), in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) (string, error) {
	var out message
	if err := c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ── Transport ────────────────────────────────────────────────────────────────

func idempotencyHeader(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{"Idempotency-Key": key}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any, headers map[string]string) error {
	var apiErr errorBody
	req := c.rc.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetResult(result).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	return c.check(resp, err, &apiErr)
}

func (c *Client) check(resp *resty.Response, err error, body *errorBody) error {
	if err != nil {
		c.log.Error().Err(err).Msg("request failed")
		return fmt.Errorf("request: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: msg}
	c.log.Warn().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", apiErr.StatusCode).
		Str("error", msg).
		Msg("api returned an error")
	return apiErr
}
