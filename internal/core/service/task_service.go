package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

// EmptyTasksMessage accompanies an empty task list.
const EmptyTasksMessage = "No tasks found. Create one to get started!"

type TaskService struct {
	repo       ports.TaskRepository
	categories ports.CategoryRepository
	idem       ports.IdempotencyStore // optional
	logger     zerolog.Logger
	now        func() time.Time
}

// NewTaskService wires the task use cases. idem may be nil, in which case
// idempotency keys are ignored.
func NewTaskService(repo ports.TaskRepository, categories ports.CategoryRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, categories: categories, idem: idem, logger: logger, now: time.Now}
}

// Create stores a new task stamped with the caller as owner. Status defaults
// to pending and completed to false.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*ports.CreateResult[domain.Task], error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	status := domain.TaskPending
	if in.Status != "" {
		status = domain.TaskStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
		}
	}

	if in.CategoryID != "" {
		if err := s.checkCategory(ctx, in.CategoryID, in.OwnerID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	task := &domain.Task{
		Title:       title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Completed:   in.Completed,
		Status:      status,
		CategoryID:  in.CategoryID,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := keyedCreate[domain.Task]{
		idem:   s.idem,
		logger: s.logger,
		scope:  idempotencyScope("tasks", in.OwnerID),
		key:    in.IdempotencyKey,
		find: func(ctx context.Context, id string) (*domain.Task, error) {
			return s.repo.FindByID(ctx, id, in.OwnerID)
		},
		insert: func(ctx context.Context) (*domain.Task, error) {
			created, err := s.repo.Create(ctx, task)
			if err != nil {
				s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create task")
				return nil, fmt.Errorf("create task: %w", err)
			}
			return created, nil
		},
		idOf: func(t *domain.Task) string { return t.ID },
	}.run(ctx)
	if err != nil {
		return nil, err
	}

	if !res.Replayed {
		s.logger.Info().Str("task_id", res.Record.ID).Str("owner_id", in.OwnerID).Msg("task created")
	}
	return res, nil
}

// List returns every task the owner has. An empty result carries a message
// instead of an error.
func (s *TaskService) List(ctx context.Context, ownerID string) (*ports.ListResult[domain.Task], error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return &ports.ListResult[domain.Task]{Data: []*domain.Task{}, Message: EmptyTasksMessage}, nil
	}
	return &ports.ListResult[domain.Task]{Data: tasks}, nil
}

func (s *TaskService) Get(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

// Update applies a partial change. Setting status never touches completed
// and vice versa.
func (s *TaskService) Update(ctx context.Context, id, ownerID string, in ports.UpdateTaskInput) (*domain.Task, error) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		in.Title = &title
	}

	patch := domain.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Completed:   in.Completed,
		CategoryID:  in.CategoryID,
	}

	if in.Status != nil {
		status := domain.TaskStatus(*in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
		}
		patch.Status = &status
	}

	if in.CategoryID != nil && *in.CategoryID != "" {
		if err := s.checkCategory(ctx, *in.CategoryID, ownerID); err != nil {
			return nil, err
		}
	}

	if patch.Empty() {
		return s.repo.FindByID(ctx, id, ownerID)
	}

	updated, err := s.repo.Update(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("task_id", id).Str("owner_id", ownerID).Msg("task updated")
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id, ownerID string) (*ports.DeleteResult, error) {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return nil, err
	}
	s.logger.Info().Str("task_id", id).Str("owner_id", ownerID).Msg("task deleted")
	return &ports.DeleteResult{Message: "Task deleted successfully"}, nil
}

// checkCategory rejects references to categories the owner does not have.
func (s *TaskService) checkCategory(ctx context.Context, categoryID, ownerID string) error {
	if _, err := s.categories.FindByID(ctx, categoryID, ownerID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidCategory, categoryID)
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}
