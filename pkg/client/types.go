package client

import "time"

// Task statuses accepted by the API.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// User is the union of the user shapes the API returns. Endpoints fill the
// fields they know about and leave the rest empty.
type User struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	Username             string `json:"username"`
	ProfileImage         string `json:"profileImage,omitempty"`
	LinkedInURL          string `json:"linkedinUrl,omitempty"`
	LinkedInName         string `json:"linkedInName,omitempty"`
	LinkedInProfileURL   string `json:"linkedInProfileUrl,omitempty"`
	LinkedInProfileImage string `json:"linkedInProfileImage,omitempty"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	Status      string     `json:"status"`
	CategoryID  string     `json:"categoryId,omitempty"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// List is the list envelope. Message is only set for an empty list.
type List[T any] struct {
	Data    []T    `json:"data"`
	Message string `json:"message,omitempty"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// ProfileUpdate changes only the non-nil fields.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// TaskInput creates a task. DueDate is YYYY-MM-DD or RFC 3339.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
	Status      string `json:"status,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`

	// IdempotencyKey is sent as the Idempotency-Key header when set.
	IdempotencyKey string `json:"-"`
}

// TaskUpdate changes only the non-nil fields. An empty CategoryID removes
// the category.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Status      *string `json:"status,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	IdempotencyKey string `json:"-"`
}

type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type message struct {
	Message string `json:"message"`
}

type mutationResponse struct {
	Message      string `json:"message"`
	User         User   `json:"user"`
	ProfileImage string `json:"profileImage"`
}
