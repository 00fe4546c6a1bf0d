package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

const dateOnly = "2006-01-02"

// parseDueDate accepts a calendar date (YYYY-MM-DD, read as UTC midnight) or
// a full RFC 3339 timestamp. An empty string means no due date.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate must be YYYY-MM-DD or RFC 3339", domain.ErrInvalidInput)
	}
	t = t.UTC()
	return &t, nil
}

// --- Request → Service input ---

func toCreateTaskInput(req createTaskRequest, ownerID, idempotencyKey string) (ports.CreateTaskInput, error) {
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return ports.CreateTaskInput{}, err
	}
	return ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        due,
		Completed:      req.Completed,
		Status:         req.Status,
		CategoryID:     strings.TrimSpace(req.CategoryID),
		OwnerID:        ownerID,
		IdempotencyKey: idempotencyKey,
	}, nil
}

func toUpdateTaskInput(req updateTaskRequest) (ports.UpdateTaskInput, error) {
	in := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Status:      req.Status,
	}
	if req.CategoryID != nil {
		categoryID := strings.TrimSpace(*req.CategoryID)
		in.CategoryID = &categoryID
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return ports.UpdateTaskInput{}, err
		}
		in.DueDate = due
	}
	return in, nil
}

// --- Domain → Response ---

func toUserSummary(u *domain.User) userSummary {
	return userSummary{ID: u.ID, Email: u.Email, Username: u.Username}
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
	}
}

func toLinkedInProfile(u *domain.User) linkedInProfile {
	return linkedInProfile{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		LinkedInName:         u.LinkedInName,
		LinkedInProfileURL:   u.LinkedInProfileURL,
		LinkedInProfileImage: u.LinkedInProfileImage,
	}
}
