// Package api contains the HTTP handlers and request/response models for
// the task management API.
package api

import "github.com/taskforge/tarefas-api/internal/domain"

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// LoginRequest is the payload for authenticating an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

// LoginResponse carries the signed token plus the authenticated account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"usuario"`
}

// TaskCreateRequest is the payload for creating a task. Status is optional
// and defaults to pending.
type TaskCreateRequest struct {
	Title       string `json:"titulo" validate:"required"`
	Description string `json:"descricao"`
	Status      string `json:"status"`
}

// TaskUpdateRequest is the payload for a partial task update. Absent fields
// keep their stored values; at least one field must be present.
type TaskUpdateRequest struct {
	Title       *string `json:"titulo"`
	Description *string `json:"descricao"`
	Status      *string `json:"status"`
}

// TaskUpdateResponse confirms an applied update.
type TaskUpdateResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"tarefa"`
}
