package domain

import "time"

// TaskStatus is the workflow state of a task. It is stored independently of
// Task.Completed; the two are never reconciled.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

var taskStatuses = map[TaskStatus]struct{}{
	TaskPending:    {},
	TaskInProgress: {},
	TaskCompleted:  {},
	TaskCancelled:  {},
}

// Valid reports whether s is one of the recognised statuses.
func (s TaskStatus) Valid() bool {
	_, ok := taskStatuses[s]
	return ok
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	Status      TaskStatus `json:"status"`
	CategoryID  string     `json:"categoryId,omitempty"`
	OwnerID     string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskPatch is a partial task update. A non-nil CategoryID pointing at ""
// removes the category reference.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
	Status      *TaskStatus
	CategoryID  *string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Completed == nil && p.Status == nil && p.CategoryID == nil
}
