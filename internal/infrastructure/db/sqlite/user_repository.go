package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/taskboard/task-api/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := userModel{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateUserError(err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) first(ctx context.Context, query string, arg string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	updates := map[string]interface{}{}
	setIf := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setIf("username", p.Username)
	setIf("email", p.Email)
	setIf("profile_image", p.ProfileImage)
	setIf("linked_in_url", p.LinkedInURL)
	setIf("linked_in_name", p.LinkedInName)
	setIf("linked_in_profile_url", p.LinkedInProfileURL)
	setIf("linked_in_profile_image", p.LinkedInProfileImage)

	var m userModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&m).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrUserNotFound
	case isUniqueViolation(err):
		return nil, duplicateUserError(err)
	case err != nil:
		return nil, fmt.Errorf("update user: %w", err)
	}
	return m.toDomain(), nil
}

// duplicateUserError maps "UNIQUE constraint failed: users.<col>" to the
// matching conflict.
func duplicateUserError(err error) error {
	if strings.Contains(err.Error(), "users.username") {
		return domain.ErrUsernameTaken
	}
	return domain.ErrEmailTaken
}
