package models

import "time"

// Priority orders tasks for display only; it carries no scheduling semantics.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// TaskStatus is the task lifecycle state. All three states are mutually
// reachable; COMPLETED tasks may be reopened.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// Task is a unit of work with an unordered set of assigned STAFF users and
// an append-only comment thread. Tasks are never deleted.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Status      TaskStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	Assignees   []User
	Comments    []Comment
}

// AssignedTo reports whether the user is in the task's assignee set.
func (t *Task) AssignedTo(userID string) bool {
	for _, a := range t.Assignees {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// Overdue reports whether the task has a due date in the past and is not
// completed.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskCompleted
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidTaskStatus reports whether s is one of the known task states.
func ValidTaskStatus(s TaskStatus) bool {
	return s == TaskPending || s == TaskInProgress || s == TaskCompleted
}
