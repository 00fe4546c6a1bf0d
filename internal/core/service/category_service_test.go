package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

func newCategoryService() (*CategoryService, *stubCategoryRepo, *stubTaskRepo) {
	categories := newStubCategoryRepo()
	tasks := newStubTaskRepo()
	return NewCategoryService(categories, tasks, nil, discardLogger), categories, tasks
}

func TestCategoryService_CreateAndGet(t *testing.T) {
	svc, _, _ := newCategoryService()

	res, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Record.Description != "" {
		t.Fatalf("description should default to empty, got %q", res.Record.Description)
	}

	got, err := svc.Get(context.Background(), res.Record.ID, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Work" || got.OwnerID != "u1" {
		t.Fatalf("unexpected category %+v", got)
	}
}

func TestCategoryService_GetAsOtherOwnerIsNotFound(t *testing.T) {
	svc, _, _ := newCategoryService()
	res, _ := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Work", OwnerID: "u1"})

	if _, err := svc.Get(context.Background(), res.Record.ID, "u2"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), res.Record.ID, "u2", ports.UpdateCategoryInput{Name: strPtr("x")}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("Update: expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), res.Record.ID, "u2"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("Delete: expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_Create_RequiresName(t *testing.T) {
	svc, _, _ := newCategoryService()
	if _, err := svc.Create(context.Background(), ports.CreateCategoryInput{OwnerID: "u1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCategoryService_List(t *testing.T) {
	svc, _, _ := newCategoryService()

	empty, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(empty.Data) != 0 || empty.Message != EmptyCategoriesMessage {
		t.Fatalf("unexpected empty result %+v", empty)
	}

	_, _ = svc.Create(context.Background(), ports.CreateCategoryInput{Name: "A", OwnerID: "u1"})
	_, _ = svc.Create(context.Background(), ports.CreateCategoryInput{Name: "B", OwnerID: "u2"})

	list, _ := svc.List(context.Background(), "u1")
	if len(list.Data) != 1 || list.Data[0].Name != "A" || list.Message != "" {
		t.Fatalf("list must be scoped to owner: %+v", list)
	}
}

func TestCategoryService_Update(t *testing.T) {
	svc, _, _ := newCategoryService()
	res, _ := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Work", Description: "job", OwnerID: "u1"})

	updated, err := svc.Update(context.Background(), res.Record.ID, "u1", ports.UpdateCategoryInput{Description: strPtr("office")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Work" || updated.Description != "office" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := svc.Update(context.Background(), res.Record.ID, "u1", ports.UpdateCategoryInput{Name: strPtr("")}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCategoryService_Delete_ClearsTaskReferences(t *testing.T) {
	svc, _, tasks := newCategoryService()
	res, _ := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
	catID := res.Record.ID

	mine, _ := tasks.Create(context.Background(), &domain.Task{Title: "a", CategoryID: catID, OwnerID: "u1"})
	untouched, _ := tasks.Create(context.Background(), &domain.Task{Title: "b", CategoryID: "other", OwnerID: "u1"})
	// Same category id under another owner must not be modified.
	foreign, _ := tasks.Create(context.Background(), &domain.Task{Title: "c", CategoryID: catID, OwnerID: "u2"})

	out, err := svc.Delete(context.Background(), catID, "u1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if out.Message != "Category deleted successfully" {
		t.Fatalf("unexpected message %q", out.Message)
	}

	if got := tasks.tasks[mine.ID].CategoryID; got != "" {
		t.Fatalf("reference not cleared: %q", got)
	}
	if got := tasks.tasks[untouched.ID].CategoryID; got != "other" {
		t.Fatalf("unrelated reference changed: %q", got)
	}
	if got := tasks.tasks[foreign.ID].CategoryID; got != catID {
		t.Fatalf("foreign task changed: %q", got)
	}
	if _, err := svc.Get(context.Background(), catID, "u1"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("category should be gone, got %v", err)
	}
}

func TestCategoryService_Delete_CleanupFailureIsNotReturned(t *testing.T) {
	svc, _, tasks := newCategoryService()
	tasks.clearErr = errStoreDown
	res, _ := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Work", OwnerID: "u1"})

	if _, err := svc.Delete(context.Background(), res.Record.ID, "u1"); err != nil {
		t.Fatalf("cleanup failure must not fail delete, got %v", err)
	}
}

func TestCategoryService_Create_IdempotencyKey(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, newStubTaskRepo(), newStubIdempotency(), discardLogger)

	in := ports.CreateCategoryInput{Name: "Work", OwnerID: "u1", IdempotencyKey: "abc"}
	first, _ := svc.Create(context.Background(), in)
	second, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !second.Replayed || second.Record.ID != first.Record.ID || len(repo.categories) != 1 {
		t.Fatalf("expected replay, got %+v (stored %d)", second, len(repo.categories))
	}
}

func TestCategoryService_Update_TrimsName(t *testing.T) {
	svc, _, _ := newCategoryService()
	res, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "  Job \t"
	updated, err := svc.Update(context.Background(), res.Record.ID, "u1", ports.UpdateCategoryInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Job" {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}
}
