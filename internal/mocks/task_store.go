package mocks

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, task *domain.Task) error
	ListByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	GetForUserFn   func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	UpdateFn       func(ctx context.Context, id, userID uuid.UUID, patch domain.TaskPatch) (int64, error)
	DeleteFn       func(ctx context.Context, id, userID uuid.UUID) (int64, error)

	// Data for the default in-memory implementation, keyed by task ID.
	Tasks map[uuid.UUID]*domain.Task

	// Errors forced onto the default implementation
	CreateError error
	ListError   error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if err := task.Validate(); err != nil {
		return err
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// ListByUserID implements the TaskStore interface
func (m *MockTaskStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID == userID {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}
	return tasks, nil
}

// GetForUser implements the TaskStore interface.
// Like the real store, a task owned by someone else is reported exactly
// like a missing one.
func (m *MockTaskStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Task, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	patch domain.TaskPatch,
) (int64, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, userID, patch)
	}

	if err := patch.Validate(); err != nil {
		return 0, err
	}

	task, exists := m.Tasks[id]
	if !exists || task.UserID != userID {
		return 0, nil
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	task.UpdatedAt = time.Now().UTC()
	return 1, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.UserID != userID {
		return 0, nil
	}
	delete(m.Tasks, id)
	return 1, nil
}

// WithTx implements the TaskStore interface; the mock ignores transactions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
