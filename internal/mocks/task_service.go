package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/service"
)

// MockTaskService implements service.TaskService with function fields.
type MockTaskService struct {
	CreateFn   func(ctx context.Context, userID uuid.UUID, title, description string, status domain.TaskStatus) (*domain.Task, error)
	ListFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	GetOwnedFn func(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)
	UpdateFn   func(ctx context.Context, taskID, userID uuid.UUID, patch domain.TaskPatch) (int64, error)
	DeleteFn   func(ctx context.Context, taskID, userID uuid.UUID) (int64, error)
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) Create(ctx context.Context, userID uuid.UUID, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, title, description, status)
	}
	return domain.NewTask(userID, title, description, status)
}

func (m *MockTaskService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskService) GetOwned(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error) {
	if m.GetOwnedFn != nil {
		return m.GetOwnedFn(ctx, taskID, userID)
	}
	return &domain.Task{ID: taskID, UserID: userID}, nil
}

func (m *MockTaskService) Update(ctx context.Context, taskID, userID uuid.UUID, patch domain.TaskPatch) (int64, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, taskID, userID, patch)
	}
	return 1, nil
}

func (m *MockTaskService) Delete(ctx context.Context, taskID, userID uuid.UUID) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, taskID, userID)
	}
	return 1, nil
}
