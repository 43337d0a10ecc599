package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/tarefas-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Token returned by GenerateToken when GenerateTokenFn is nil
	Token string
	// GenerateErr forced onto GenerateToken
	GenerateErr error
	// Claims returned by ValidateToken when ValidateTokenFn is nil
	Claims *auth.Claims
	// ValidateErr forced onto ValidateToken
	ValidateErr error

	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// Ensure MockJWTService implements auth.JWTService interface
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(
	ctx context.Context,
	userID uuid.UUID,
	email string,
) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, email)
	}
	if m.GenerateErr != nil {
		return "", m.GenerateErr
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "mock-token-" + userID.String(), nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	return nil, auth.ErrInvalidToken
}
