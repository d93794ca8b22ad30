package task

import (
	"slices"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses returns the recognized statuses in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Known reports whether s is one of the recognized statuses.
func (s Status) Known() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a single task in the collection.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// New returns a todo task with both timestamps set to now.
func New(id int, description string, now time.Time) Task {
	ts := NewTimestamp(now)
	return Task{
		ID:          id,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// NextID returns the ID the next added task receives.
func NextID(tasks []Task) int {
	return len(tasks) + 1
}

// Filter returns the tasks whose status equals *status, in collection order.
// A nil status returns every task.
func Filter(tasks []Task, status *Status) []Task {
	if status == nil {
		return slices.Clone(tasks)
	}
	var filtered []Task
	for _, t := range tasks {
		if t.Status == *status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// SetDescription replaces the description of the first task with id.
func SetDescription(tasks []Task, id int, description string, now time.Time) ([]Task, bool) {
	return update(tasks, id, now, func(t *Task) {
		t.Description = description
	})
}

// SetStatus replaces the status of the first task with id. Any status is
// accepted, recognized or not.
func SetStatus(tasks []Task, id int, status Status, now time.Time) ([]Task, bool) {
	return update(tasks, id, now, func(t *Task) {
		t.Status = status
	})
}

// Remove drops every task with id and reports how many were dropped.
func Remove(tasks []Task, id int) ([]Task, int) {
	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept, len(tasks) - len(kept)
}

// update applies updater to the first task with id and refreshes its updatedAt.
func update(tasks []Task, id int, now time.Time, updater func(*Task)) ([]Task, bool) {
	out := slices.Clone(tasks)
	for i := range out {
		if out[i].ID == id {
			updater(&out[i])
			out[i].UpdatedAt = NewTimestamp(now)
			return out, true
		}
	}
	return out, false
}
