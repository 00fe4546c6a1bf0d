package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory task repository (mirrors the owner-scoped Mongo filters)
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	seq       int
	createErr error
	clearErr  error

	// beforeCreate, when set, runs at the start of Create.
	beforeCreate func()
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	return &c
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	stored := cloneTask(t)
	stored.ID = fmt.Sprintf("task-%d", r.seq)
	r.tasks[stored.ID] = stored
	return cloneTask(stored), nil
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Update(_ context.Context, id, ownerID string, p domain.TaskPatch) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id, ownerID string) error {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) ClearCategory(_ context.Context, categoryID, ownerID string) (int64, error) {
	if r.clearErr != nil {
		return 0, r.clearErr
	}
	var n int64
	for _, t := range r.tasks {
		if t.OwnerID == ownerID && t.CategoryID == categoryID {
			t.CategoryID = ""
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// In-memory category repository
// ---------------------------------------------------------------------------

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	seq        int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func cloneCategory(c *domain.Category) *domain.Category {
	cc := *c
	return &cc
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.seq++
	stored := cloneCategory(c)
	stored.ID = fmt.Sprintf("cat-%d", r.seq)
	r.categories[stored.ID] = stored
	return cloneCategory(stored), nil
}

func (r *stubCategoryRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		if c.OwnerID == ownerID {
			out = append(out, cloneCategory(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) Update(_ context.Context, id, ownerID string, p domain.CategoryPatch) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrCategoryNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id, ownerID string) error {
	c, ok := r.categories[id]
	if !ok || c.OwnerID != ownerID {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

// ---------------------------------------------------------------------------
// Idempotency store
// ---------------------------------------------------------------------------

// stubIdempotency has Redis SET NX semantics: the first Reserve wins and
// later ones see "" until Complete stores the id.
type stubIdempotency struct {
	mu         sync.Mutex
	keys       map[string]string
	reserveErr error
	released   int
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	id, ok := s.keys[scope+"|"+key]
	if ok {
		return id, false, nil
	}
	s.keys[scope+"|"+key] = ""
	return "", true, nil
}

func (s *stubIdempotency) Complete(_ context.Context, scope, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[scope+"|"+key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, scope+"|"+key)
	s.released++
	return nil
}

var errStoreDown = errors.New("store unavailable")
