package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskboard/task-api/internal/core/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	m := categoryModel{
		UserID:      c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CategoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]*domain.Category, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Category, error) {
	var m categoryModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrCategoryNotFound
	case err != nil:
		return nil, fmt.Errorf("find category: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CategoryRepository) Update(ctx context.Context, id, ownerID string, p domain.CategoryPatch) (*domain.Category, error) {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}

	var m categoryModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&m).Error; err != nil {
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
		return nil, domain.ErrCategoryNotFound
	case err != nil:
		return nil, fmt.Errorf("update category: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&categoryModel{})
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
