package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the completion state of a task
type TaskStatus string

// Possible task status values. There is no enforced transition order;
// an owner may move a task between any of the three states freely.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID     = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")

	// ErrInvalidTaskStatus is wrapped with the allowed values whenever a
	// status fails validation, whether caught before persistence or mapped
	// back from a database enum rejection.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// Task represents a to-do item owned by exactly one user.
// UserID is immutable after creation; every store access filters on it.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"titulo"`
	Description string     `json:"descricao,omitempty"`
	Status      TaskStatus `json:"status"`
	UserID      uuid.UUID  `json:"usuarioId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a new Task owned by the given user. It generates a new
// UUID for the task ID, defaults the status to pending when none is given,
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      status,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if !IsValidTaskStatus(t.Status) {
		return StatusValidationError(t.Status)
	}

	return nil
}

// TaskPatch describes a partial update to a task. Nil fields are left
// untouched. The owner and identifiers are never patchable.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Validate checks the patch fields that carry domain rules: a patched title
// must remain non-blank and a patched status must be a known value.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("titulo", "cannot be blank", ErrEmptyTaskTitle)
	}

	if p.Status != nil && !IsValidTaskStatus(*p.Status) {
		return StatusValidationError(*p.Status)
	}

	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// AllowedTaskStatuses returns the valid status values in declaration order.
func AllowedTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}
}

// StatusValidationError builds the canonical error for a rejected status
// value, naming the field and the allowed set. Both the pre-persistence
// check and the database constraint mapping produce this same error.
func StatusValidationError(status TaskStatus) error {
	allowed := AllowedTaskStatuses()
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return NewValidationError(
		"status",
		fmt.Sprintf("must be one of: %s", strings.Join(names, ", ")),
		ErrInvalidTaskStatus,
	)
}
