package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

// EmptyCategoriesMessage accompanies an empty category list.
const EmptyCategoriesMessage = "No categories found. Create one to get started!"

// CategoryReferenceCleaner unsets a category on the owner's tasks.
type CategoryReferenceCleaner interface {
	ClearCategory(ctx context.Context, categoryID, ownerID string) (int64, error)
}

type CategoryService struct {
	repo   ports.CategoryRepository
	tasks  CategoryReferenceCleaner
	idem   ports.IdempotencyStore // optional
	logger zerolog.Logger
	now    func() time.Time
}

func NewCategoryService(repo ports.CategoryRepository, tasks CategoryReferenceCleaner, idem ports.IdempotencyStore, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, tasks: tasks, idem: idem, logger: logger, now: time.Now}
}

func (s *CategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*ports.CreateResult[domain.Category], error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	category := &domain.Category{
		Name:        name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := keyedCreate[domain.Category]{
		idem:   s.idem,
		logger: s.logger,
		scope:  idempotencyScope("categories", in.OwnerID),
		key:    in.IdempotencyKey,
		find: func(ctx context.Context, id string) (*domain.Category, error) {
			return s.repo.FindByID(ctx, id, in.OwnerID)
		},
		insert: func(ctx context.Context) (*domain.Category, error) {
			created, err := s.repo.Create(ctx, category)
			if err != nil {
				s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create category")
				return nil, fmt.Errorf("create category: %w", err)
			}
			return created, nil
		},
		idOf: func(c *domain.Category) string { return c.ID },
	}.run(ctx)
	if err != nil {
		return nil, err
	}

	if !res.Replayed {
		s.logger.Info().Str("category_id", res.Record.ID).Str("owner_id", in.OwnerID).Msg("category created")
	}
	return res, nil
}

func (s *CategoryService) List(ctx context.Context, ownerID string) (*ports.ListResult[domain.Category], error) {
	categories, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return &ports.ListResult[domain.Category]{Data: []*domain.Category{}, Message: EmptyCategoriesMessage}, nil
	}
	return &ports.ListResult[domain.Category]{Data: categories}, nil
}

func (s *CategoryService) Get(ctx context.Context, id, ownerID string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

func (s *CategoryService) Update(ctx context.Context, id, ownerID string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		in.Name = &name
	}

	patch := domain.CategoryPatch{Name: in.Name, Description: in.Description}
	if patch.Empty() {
		return s.repo.FindByID(ctx, id, ownerID)
	}
	return s.repo.Update(ctx, id, ownerID, patch)
}

// Delete hard-deletes the category, then clears the reference on the
// owner's tasks. A failed cleanup leaves dangling references and is only
// logged: the category itself is already gone.
func (s *CategoryService) Delete(ctx context.Context, id, ownerID string) (*ports.DeleteResult, error) {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return nil, err
	}

	cleared, err := s.tasks.ClearCategory(ctx, id, ownerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("category_id", id).Msg("failed to clear category from tasks")
	}

	s.logger.Info().
		Str("category_id", id).
		Str("owner_id", ownerID).
		Int64("tasks_cleared", cleared).
		Msg("category deleted")

	return &ports.DeleteResult{Message: "Category deleted successfully"}, nil
}
