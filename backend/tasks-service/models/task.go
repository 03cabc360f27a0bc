package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// Statuses lists the board columns in display order.
var Statuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// Title is the column heading shown on the board.
func (s TaskStatus) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Rank orders priorities for sorting: high=3, medium=2, low=1.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Task struct {
	ID          string       `json:"id" firestore:"-"`
	Title       string       `json:"title" firestore:"title"`
	Description string       `json:"description" firestore:"description"`
	Status      TaskStatus   `json:"status" firestore:"status"`
	Priority    TaskPriority `json:"priority" firestore:"priority"`
	Archived    bool         `json:"archived" firestore:"archived"`
	CreatedAt   time.Time    `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" firestore:"updatedAt"`
}

// ParseStatus accepts a status in any letter case. The second result is false
// for anything that is not a known column.
func ParseStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusTodo:
		return StatusTodo, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusDone:
		return StatusDone, true
	}
	return "", false
}

// ParsePriority accepts a priority in any letter case.
func ParsePriority(s string) (TaskPriority, bool) {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

// StatusOrDefault falls back to todo for unknown values.
func StatusOrDefault(s string) TaskStatus {
	if status, ok := ParseStatus(s); ok {
		return status
	}
	return StatusTodo
}

// PriorityOrDefault falls back to medium for unknown values.
func PriorityOrDefault(s string) TaskPriority {
	if priority, ok := ParsePriority(s); ok {
		return priority
	}
	return PriorityMedium
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest is the PUT body. Pointers tell a missing field apart from an empty one.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"required,notblank"`
	Description *string `json:"description" binding:"required,notblank"`
	Status      *string `json:"status" binding:"required,notblank"`
	Priority    *string `json:"priority" binding:"required,notblank"`
	Archived    *bool   `json:"archived"`
}

type PatchTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Archived    *bool   `json:"archived,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (r PatchTaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil && r.Priority == nil && r.Archived == nil
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}
