package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/service"
)

// MockUserService implements service.UserService with function fields.
type MockUserService struct {
	RegisterFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	LoginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUserFn  func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, email, password)
	}
	return &domain.User{ID: uuid.New(), Name: name, Email: email}, nil
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return "mock-token", &domain.User{ID: uuid.New(), Email: email}, nil
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return &domain.User{ID: userID}, nil
}
