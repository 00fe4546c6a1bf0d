package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/apitest"
)

type client struct {
	t     *testing.T
	e     *echo.Echo
	token string
}

func (c *client) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

// signUp registers and logs in, returning an authenticated client and the
// user id.
func signUp(t *testing.T, e *echo.Echo, name string) (*client, string) {
	t.Helper()
	c := &client{t: t, e: e}

	rec := c.do(http.MethodPost, "/auth/register",
		`{"username":"`+name+`","email":"`+name+`@example.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", name, rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodPost, "/auth/login", `{"email":"`+name+`@example.com","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", name, rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	c.token, _ = resp["access_token"].(string)
	user, _ := resp["user"].(map[string]any)
	id, _ := user["id"].(string)
	if c.token == "" || id == "" {
		t.Fatalf("login %s: missing token or id: %+v", name, resp)
	}
	return c, id
}

func TestRouter_AuthFlow(t *testing.T) {
	e := apitest.Router(t)
	anon := &client{t: t, e: e}

	_, _ = signUp(t, e, "alice")

	rec := anon.do(http.MethodPost, "/auth/register", `{"username":"alice","email":"other@example.com","password":"secret1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d", rec.Code)
	}

	rec = anon.do(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if decode(t, rec)["error"] != "invalid credentials" {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	rec = anon.do(http.MethodGet, "/tasks", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}
}

func TestRouter_TaskLifecycle(t *testing.T) {
	e := apitest.Router(t)
	alice, aliceID := signUp(t, e, "alice")

	rec := alice.do(http.MethodPost, "/tasks", `{"title":"T1","description":"D1","dueDate":"2024-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	task := decode(t, rec)
	taskID, _ := task["id"].(string)
	if task["status"] != "pending" || task["completed"] != false || task["userId"] != aliceID {
		t.Fatalf("unexpected task: %+v", task)
	}

	rec = alice.do(http.MethodGet, "/tasks", "")
	list := decode(t, rec)
	if data, _ := list["data"].([]any); len(data) != 1 {
		t.Fatalf("expected one task, got %+v", list)
	}

	rec = alice.do(http.MethodPatch, "/tasks/"+taskID, `{"status":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bogus status: expected 400, got %d", rec.Code)
	}

	rec = alice.do(http.MethodPatch, "/tasks/"+taskID, `{"status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode(t, rec)
	if updated["status"] != "completed" || updated["completed"] != false {
		t.Fatalf("status must not touch completed: %+v", updated)
	}

	rec = alice.do(http.MethodDelete, "/tasks/"+taskID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	list = decode(t, alice.do(http.MethodGet, "/tasks", ""))
	data, ok := list["data"].([]any)
	if !ok || len(data) != 0 || list["message"] == "" || list["message"] == nil {
		t.Fatalf("expected empty list with message, got %+v", list)
	}
}

func TestRouter_OwnerIsolation(t *testing.T) {
	e := apitest.Router(t)
	alice, aliceID := signUp(t, e, "alice")
	bob, _ := signUp(t, e, "bob")

	rec := alice.do(http.MethodPost, "/categories", `{"name":"Work"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d", rec.Code)
	}
	categoryID, _ := decode(t, rec)["id"].(string)

	rec = alice.do(http.MethodPost, "/tasks", `{"title":"T1","categoryId":"`+categoryID+`"}`)
	taskID, _ := decode(t, rec)["id"].(string)

	for _, path := range []string{"/tasks/" + taskID, "/categories/" + categoryID} {
		if rec := bob.do(http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("GET %s as bob: expected 404, got %d", path, rec.Code)
		}
		if rec := bob.do(http.MethodPatch, path, `{"name":"x","title":"x"}`); rec.Code != http.StatusNotFound {
			t.Fatalf("PATCH %s as bob: expected 404, got %d", path, rec.Code)
		}
		if rec := bob.do(http.MethodDelete, path, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("DELETE %s as bob: expected 404, got %d", path, rec.Code)
		}
	}

	// Bob cannot attach Alice's category to his own task.
	rec = bob.do(http.MethodPost, "/tasks", `{"title":"B1","categoryId":"`+categoryID+`"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("foreign category: expected 400, got %d", rec.Code)
	}

	// Bob cannot scrape into Alice's profile.
	rec = bob.do(http.MethodPost, "/users/linkedin/scrape/"+aliceID, `{"linkedInUrl":"https://www.linkedin.com/in/alice"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("scrape as other user: expected 404, got %d", rec.Code)
	}
}

func TestRouter_CategoryDeleteClearsTasks(t *testing.T) {
	e := apitest.Router(t)
	alice, _ := signUp(t, e, "alice")

	categoryID, _ := decode(t, alice.do(http.MethodPost, "/categories", `{"name":"Work"}`))["id"].(string)
	taskID, _ := decode(t, alice.do(http.MethodPost, "/tasks", `{"title":"T1","categoryId":"`+categoryID+`"}`))["id"].(string)

	if rec := alice.do(http.MethodDelete, "/categories/"+categoryID, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete category: expected 200, got %d", rec.Code)
	}

	task := decode(t, alice.do(http.MethodGet, "/tasks/"+taskID, ""))
	if _, still := task["categoryId"]; still {
		t.Fatalf("expected category reference cleared: %+v", task)
	}
}

func TestRouter_Profile(t *testing.T) {
	e := apitest.Router(t)
	alice, aliceID := signUp(t, e, "alice")

	profile := decode(t, alice.do(http.MethodGet, "/users/profile", ""))
	if profile["id"] != aliceID || profile["username"] != "alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	rec := alice.do(http.MethodPatch, "/users/profile", `{"username":"alice2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = alice.do(http.MethodPost, "/users/linkedin/scrape/"+aliceID, `{"linkedInUrl":"https://www.linkedin.com/in/alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user, _ := decode(t, rec)["user"].(map[string]any)
	if user["linkedInName"] != apitest.Profile.Name {
		t.Fatalf("unexpected scraped user: %+v", user)
	}

	// Upload goes through multipart.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "me.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/users/profile/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+alice.token)
	upload := httptest.NewRecorder()
	e.ServeHTTP(upload, req)
	if upload.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", upload.Code, upload.Body.String())
	}

	profile = decode(t, alice.do(http.MethodGet, "/users/profile", ""))
	if profile["profileImage"] != apitest.ImageURL {
		t.Fatalf("profile image not stored: %+v", profile)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := apitest.Router(t)
	anon := &client{t: t, e: e}

	if rec := anon.do(http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	rec := anon.do(http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK || decode(t, rec)["status"] != "ok" {
		t.Fatalf("readiness: got %d %s", rec.Code, rec.Body.String())
	}

	rec = anon.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "_requests_total") {
		t.Fatalf("metrics: got %d", rec.Code)
	}
}
