package api

import (
	"errors"
	"net/http"

	"github.com/taskforge/tarefas-api/internal/api/shared"
	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/platform/logger"
	"github.com/taskforge/tarefas-api/internal/service"
	"github.com/taskforge/tarefas-api/internal/service/auth"
	"github.com/taskforge/tarefas-api/internal/store"
)

// MapErrorToStatusCode translates domain, service and store errors into HTTP
// status codes. Ownership failures deliberately land on 404: a caller probing
// someone else's task gets the same answer as one probing a task that never
// existed.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrEmptyUpdate),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message appropriate for the client. Anything
// outside the known taxonomy collapses to a generic message; internal detail
// stays in the logs.
func GetSafeErrorMessage(err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, service.ErrEmptyUpdate):
		return "Update must include at least one field"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid input"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid or expired token"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps err and writes the response, logging server-side
// failures with full detail.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, logger.FromContext(r.Context()), err, status, message)
		return
	}
	shared.RespondWithError(w, r, status, message)
}
