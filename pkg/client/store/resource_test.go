package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/task-api/pkg/client"
)

// fakeTasks records calls and serves a server-side list.
type fakeTasks struct {
	server    []client.Task
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	calls     []string
}

func (f *fakeTasks) ListTasks(context.Context) (*client.List[client.Task], error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &client.List[client.Task]{Data: append([]client.Task(nil), f.server...)}
	if len(out.Data) == 0 {
		out.Message = "No tasks found"
	}
	return out, nil
}

func (f *fakeTasks) CreateTask(_ context.Context, in client.TaskInput) (*client.Task, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	t := client.Task{ID: "t" + in.Title, Title: in.Title, Status: client.StatusPending}
	f.server = append(f.server, t)
	return &t, nil
}

func (f *fakeTasks) UpdateTask(_ context.Context, id string, in client.TaskUpdate) (*client.Task, error) {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.server {
		if f.server[i].ID == id {
			if in.Title != nil {
				f.server[i].Title = *in.Title
			}
			t := f.server[i]
			return &t, nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "task not found"}
}

func (f *fakeTasks) DeleteTask(_ context.Context, id string) (string, error) {
	f.calls = append(f.calls, "delete")
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	for i := range f.server {
		if f.server[i].ID == id {
			f.server = append(f.server[:i], f.server[i+1:]...)
			break
		}
	}
	return "Task deleted successfully", nil
}

func titles(items []client.Task) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.Title)
	}
	return out
}

func TestTaskStore_CreateThenReload(t *testing.T) {
	gw := &fakeTasks{server: []client.Task{{ID: "ta", Title: "a"}}}
	s := NewTaskStore(gw, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, s.Fetch(ctx))
	created, err := s.Create(ctx, client.TaskInput{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, "tb", created.ID)

	assert.Equal(t, []string{"list", "create", "list"}, gw.calls, "mutation is followed by a full reload")
	snap := s.Snapshot()
	assert.Equal(t, []string{"a", "b"}, titles(snap.Items))
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
}

func TestTaskStore_ReloadReplacesCacheWholesale(t *testing.T) {
	gw := &fakeTasks{server: []client.Task{{ID: "ta", Title: "a"}}}
	s := NewTaskStore(gw, zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx))

	// Another session deleted "a" behind our back.
	gw.server = nil
	_, err := s.Create(ctx, client.TaskInput{Title: "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, titles(s.Snapshot().Items))
}

func TestTaskStore_FailureKeepsList(t *testing.T) {
	tests := []struct {
		name    string
		gw      *fakeTasks
		mutate  func(*TaskStore) error
		wantErr string
	}{
		{
			name: "create with server message",
			gw:   &fakeTasks{createErr: &client.APIError{StatusCode: 400, Message: "title is required"}},
			mutate: func(s *TaskStore) error {
				_, err := s.Create(context.Background(), client.TaskInput{})
				return err
			},
			wantErr: "title is required",
		},
		{
			name: "update falls back to generic message",
			gw:   &fakeTasks{updateErr: errors.New("connection refused")},
			mutate: func(s *TaskStore) error {
				_, err := s.Update(context.Background(), "ta", client.TaskUpdate{})
				return err
			},
			wantErr: "Failed to update task",
		},
		{
			name: "delete",
			gw:   &fakeTasks{deleteErr: &client.APIError{StatusCode: 404}},
			mutate: func(s *TaskStore) error {
				return s.Delete(context.Background(), "ta")
			},
			wantErr: "Failed to delete task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.gw.server = []client.Task{{ID: "ta", Title: "a"}}
			s := NewTaskStore(tt.gw, zerolog.Nop())
			require.NoError(t, s.Fetch(context.Background()))
			tt.gw.calls = nil

			err := tt.mutate(s)
			require.Error(t, err)

			assert.Len(t, tt.gw.calls, 1, "no reload and no retry after a failure")
			snap := s.Snapshot()
			assert.Equal(t, tt.wantErr, snap.Error)
			assert.Equal(t, []string{"a"}, titles(snap.Items))
			assert.False(t, snap.Loading)
		})
	}
}

func TestTaskStore_FailedReloadStillReportsSuccess(t *testing.T) {
	gw := &fakeTasks{}
	s := NewTaskStore(gw, zerolog.Nop())
	gw.listErr = errors.New("timeout")

	created, err := s.Create(context.Background(), client.TaskInput{Title: "a"})
	require.NoError(t, err)
	require.NotNil(t, created)

	snap := s.Snapshot()
	assert.Equal(t, "Failed to fetch tasks", snap.Error)
	assert.Equal(t, []string{"a"}, titles(snap.Items), "local reconcile survives a failed reload")
}

func TestTaskStore_EmptyListMessage(t *testing.T) {
	s := NewTaskStore(&fakeTasks{}, zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, "No tasks found", snap.Message)
}

func TestCache_Reconcile(t *testing.T) {
	c := newCache(func(t client.Task) string { return t.ID }, zerolog.Nop())
	c.reset([]client.Task{{ID: "1", Title: "one"}, {ID: "2", Title: "two"}}, "")

	c.replace(client.Task{ID: "2", Title: "TWO"})
	assert.Equal(t, []string{"one", "TWO"}, titles(c.snapshot().Items), "replace in place")

	c.replace(client.Task{ID: "3", Title: "three"})
	assert.Equal(t, []string{"one", "TWO", "three"}, titles(c.snapshot().Items), "unknown id is appended")

	c.push(client.Task{ID: "4", Title: "four"})
	c.remove("1")
	c.remove("missing")
	assert.Equal(t, []string{"TWO", "three", "four"}, titles(c.snapshot().Items))
}

func TestCache_SnapshotIsACopy(t *testing.T) {
	c := newCache(func(t client.Task) string { return t.ID }, zerolog.Nop())
	c.reset([]client.Task{{ID: "1", Title: "one"}}, "")

	snap := c.snapshot()
	snap.Items[0].Title = "changed"

	assert.Equal(t, "one", c.snapshot().Items[0].Title)
}
