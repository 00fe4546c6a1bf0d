package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskboard/task-api/internal/core/domain"
)

// TaskRepository handles owner-scoped CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	m := taskModel{
		UserID:      t.OwnerID,
		CategoryID:  optionalString(t.CategoryID),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return m.toDomain(), nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	var rows []taskModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]*domain.Task, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	var m taskModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrTaskNotFound
	case err != nil:
		return nil, fmt.Errorf("find task: %w", err)
	}
	return m.toDomain(), nil
}

// Update applies the patch inside a transaction so the ownership check and
// the write see the same row.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID string, p domain.TaskPatch) (*domain.Task, error) {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.DueDate != nil {
		updates["due_date"] = p.DueDate.UTC()
	}
	if p.Completed != nil {
		updates["completed"] = *p.Completed
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}
	if p.CategoryID != nil {
		updates["category_id"] = optionalString(*p.CategoryID)
	}

	var m taskModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := tx.Where("id = ? AND user_id = ?", id, ownerID)
		if err := scoped.First(&m).Error; err != nil {
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
		return nil, domain.ErrTaskNotFound
	case err != nil:
		return nil, fmt.Errorf("update task: %w", err)
	}
	return m.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&taskModel{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) ClearCategory(ctx context.Context, categoryID, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&taskModel{}).
		Where("user_id = ? AND category_id = ?", ownerID, categoryID).
		Update("category_id", nil)
	if res.Error != nil {
		return 0, fmt.Errorf("clear category: %w", res.Error)
	}
	return res.RowsAffected, nil
}
