package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/pkg/client"
)

// messages are the fallbacks recorded when the server gives no reason.
type messages struct {
	fetch, create, update, remove string
}

// gateway is the slice of the API one resource cache needs.
type gateway[T, C, U any] struct {
	list   func(context.Context) (*client.List[T], error)
	create func(context.Context, C) (*T, error)
	update func(context.Context, string, U) (*T, error)
	remove func(context.Context, string) (string, error)
}

// Resource caches one owner-scoped collection.
type Resource[T, C, U any] struct {
	cache *cache[T]
	gw    gateway[T, C, U]
	msg   messages
}

// Snapshot returns a copy of the cached state.
func (r *Resource[T, C, U]) Snapshot() Snapshot[T] {
	return r.cache.snapshot()
}

// Fetch replaces the cache with the server's list.
func (r *Resource[T, C, U]) Fetch(ctx context.Context) error {
	r.cache.begin()
	list, err := r.gw.list(ctx)
	if err != nil {
		return r.cache.fail(err, r.msg.fetch)
	}
	r.cache.reset(list.Data, list.Message)
	return nil
}

// Create stores a new record and then reloads the list.
func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	r.cache.begin()
	item, err := r.gw.create(ctx, in)
	if err != nil {
		return nil, r.cache.fail(err, r.msg.create)
	}
	r.cache.push(*item)
	r.reload(ctx)
	return item, nil
}

// Update changes a record and then reloads the list.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, in U) (*T, error) {
	r.cache.begin()
	item, err := r.gw.update(ctx, id, in)
	if err != nil {
		return nil, r.cache.fail(err, r.msg.update)
	}
	r.cache.replace(*item)
	r.reload(ctx)
	return item, nil
}

// Delete removes a record and then reloads the list.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	r.cache.begin()
	if _, err := r.gw.remove(ctx, id); err != nil {
		return r.cache.fail(err, r.msg.remove)
	}
	r.cache.remove(id)
	r.reload(ctx)
	return nil
}

// reload follows a confirmed mutation. A failed reload is recorded in the
// snapshot but does not undo the mutation's success.
func (r *Resource[T, C, U]) reload(ctx context.Context) {
	_ = r.Fetch(ctx)
}

// TaskGateway is the part of *client.Client a TaskStore uses.
type TaskGateway interface {
	ListTasks(ctx context.Context) (*client.List[client.Task], error)
	CreateTask(ctx context.Context, in client.TaskInput) (*client.Task, error)
	UpdateTask(ctx context.Context, id string, in client.TaskUpdate) (*client.Task, error)
	DeleteTask(ctx context.Context, id string) (string, error)
}

type TaskStore = Resource[client.Task, client.TaskInput, client.TaskUpdate]

func NewTaskStore(gw TaskGateway, log zerolog.Logger) *TaskStore {
	return &TaskStore{
		cache: newCache(func(t client.Task) string { return t.ID }, log),
		gw: gateway[client.Task, client.TaskInput, client.TaskUpdate]{
			list:   gw.ListTasks,
			create: gw.CreateTask,
			update: gw.UpdateTask,
			remove: gw.DeleteTask,
		},
		msg: messages{
			fetch:  "Failed to fetch tasks",
			create: "Failed to create task",
			update: "Failed to update task",
			remove: "Failed to delete task",
		},
	}
}

// CategoryGateway is the part of *client.Client a CategoryStore uses.
type CategoryGateway interface {
	ListCategories(ctx context.Context) (*client.List[client.Category], error)
	CreateCategory(ctx context.Context, in client.CategoryInput) (*client.Category, error)
	UpdateCategory(ctx context.Context, id string, in client.CategoryUpdate) (*client.Category, error)
	DeleteCategory(ctx context.Context, id string) (string, error)
}

type CategoryStore = Resource[client.Category, client.CategoryInput, client.CategoryUpdate]

func NewCategoryStore(gw CategoryGateway, log zerolog.Logger) *CategoryStore {
	return &CategoryStore{
		cache: newCache(func(c client.Category) string { return c.ID }, log),
		gw: gateway[client.Category, client.CategoryInput, client.CategoryUpdate]{
			list:   gw.ListCategories,
			create: gw.CreateCategory,
			update: gw.UpdateCategory,
			remove: gw.DeleteCategory,
		},
		msg: messages{
			fetch:  "Failed to fetch categories",
			create: "Failed to create category",
			update: "Failed to update category",
			remove: "Failed to delete category",
		},
	}
}
