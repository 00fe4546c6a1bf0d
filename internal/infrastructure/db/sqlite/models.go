package sqlite

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard/task-api/internal/core/domain"
)

type userModel struct {
	ID                   string `gorm:"primaryKey;size:36"`
	Username             string `gorm:"uniqueIndex;not null"`
	Email                string `gorm:"uniqueIndex;not null"`
	PasswordHash         string `gorm:"not null"`
	ProfileImage         string
	LinkedInURL          string
	LinkedInName         string
	LinkedInProfileURL   string
	LinkedInProfileImage string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:                   m.ID,
		Username:             m.Username,
		Email:                m.Email,
		PasswordHash:         m.PasswordHash,
		ProfileImage:         m.ProfileImage,
		LinkedInURL:          m.LinkedInURL,
		LinkedInName:         m.LinkedInName,
		LinkedInProfileURL:   m.LinkedInProfileURL,
		LinkedInProfileImage: m.LinkedInProfileImage,
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
}

type categoryModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (categoryModel) TableName() string { return "categories" }

func (m *categoryModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *categoryModel) toDomain() *domain.Category {
	return &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.UserID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type taskModel struct {
	ID          string  `gorm:"primaryKey;size:36"`
	UserID      string  `gorm:"index;not null"`
	CategoryID  *string `gorm:"index"`
	Title       string  `gorm:"not null"`
	Description string
	DueDate     *time.Time
	Completed   bool   `gorm:"default:false"`
	Status      string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskModel) TableName() string { return "tasks" }

func (m *taskModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *taskModel) toDomain() *domain.Task {
	t := &domain.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		Status:      domain.TaskStatus(m.Status),
		OwnerID:     m.UserID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.CategoryID != nil {
		t.CategoryID = *m.CategoryID
	}
	if m.DueDate != nil {
		d := m.DueDate.UTC()
		t.DueDate = &d
	}
	return t
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
