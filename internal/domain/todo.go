package domain

import "time"

// Todo is a single task on the owner's planner list.
// CompletedAt is set if and only if Status is TodoCompleted.
type Todo struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      TodoStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Completed reports whether the todo is in the completed state.
func (t *Todo) Completed() bool {
	return t.Status == TodoCompleted
}

// SetCompleted toggles the completion state, keeping Status and CompletedAt
// in sync. Returns true when the todo transitioned from pending to completed.
func (t *Todo) SetCompleted(completed bool, now time.Time) bool {
	if completed == t.Completed() {
		return false
	}
	if completed {
		t.Status = TodoCompleted
		done := now
		t.CompletedAt = &done
		return true
	}
	t.Status = TodoPending
	t.CompletedAt = nil
	return false
}
