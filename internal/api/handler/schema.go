package handler

import (
	"github.com/taskboard/task-api/internal/core/domain"
)

// --- Shared ---

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	User        userSummary `json:"user"`
}

// --- Users ---

type profileResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type updatedProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedinUrl"`
}

type updateProfileResponse struct {
	Message string         `json:"message"`
	User    updatedProfile `json:"user"`
}

type uploadImageResponse struct {
	Message      string `json:"message"`
	ProfileImage string `json:"profileImage"`
}

type scrapeRequest struct {
	LinkedInURL string `json:"linkedInUrl"`
}

type linkedInProfile struct {
	ID                   string `json:"id"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	LinkedInName         string `json:"linkedInName"`
	LinkedInProfileURL   string `json:"linkedInProfileUrl"`
	LinkedInProfileImage string `json:"linkedInProfileImage"`
}

type scrapeResponse struct {
	Message string          `json:"message"`
	User    linkedInProfile `json:"user"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status"`
	CategoryID  string `json:"categoryId"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Completed   *bool   `json:"completed"`
	Status      *string `json:"status"`
	CategoryID  *string `json:"categoryId"`
}

type taskListResponse struct {
	Data    []*domain.Task `json:"data"`
	Message string         `json:"message,omitempty"`
}

// --- Categories ---

type createCategoryRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type categoryListResponse struct {
	Data    []*domain.Category `json:"data"`
	Message string             `json:"message,omitempty"`
}
