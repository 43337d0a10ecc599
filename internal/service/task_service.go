package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/platform/logger"
	"github.com/taskforge/tarefas-api/internal/store"
)

// TaskService provides task CRUD business rules. Ownership is taken from the
// authenticated caller identity on every operation; a caller-supplied owner
// is never trusted.
type TaskService interface {
	// Create makes a new task owned by userID. The title must be non-blank
	// after trimming and the status, if given, must be a known value; both
	// are checked before anything reaches the store.
	Create(
		ctx context.Context,
		userID uuid.UUID,
		title, description string,
		status domain.TaskStatus,
	) (*domain.Task, error)

	// List returns all of the user's tasks; an empty slice if none.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetOwned fetches a task filtered by (taskID, userID) jointly.
	// Returns store.ErrTaskNotFound whether the task is missing or owned by
	// someone else.
	GetOwned(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)

	// Update asserts ownership, then applies the patch. Returns the number of
	// rows changed; zero is a distinct non-error outcome the caller may treat
	// as a no-op. Returns ErrEmptyUpdate for an empty patch.
	Update(
		ctx context.Context,
		taskID, userID uuid.UUID,
		patch domain.TaskPatch,
	) (int64, error)

	// Delete asserts ownership, then deletes. Returns the number of rows
	// deleted (0 or 1).
	Delete(ctx context.Context, taskID, userID uuid.UUID) (int64, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if status != "" && !domain.IsValidTaskStatus(status) {
		log.Debug("task creation rejected: invalid status",
			slog.String("status", string(status)),
			slog.String("user_id", userID.String()))
		return nil, domain.StatusValidationError(status)
	}

	task, err := domain.NewTask(userID, title, description, status)
	if err != nil {
		log.Debug("task creation rejected by validation",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		if errors.Is(err, domain.ErrEmptyTaskTitle) {
			return nil, domain.NewValidationError("titulo", "cannot be blank", err)
		}
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		if _, ok := errAsValidation(err); ok {
			return nil, err
		}
		log.Error("failed to persist task",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	return task, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.ListByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetOwned implements TaskService.GetOwned
func (s *taskServiceImpl) GetOwned(
	ctx context.Context,
	taskID, userID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.taskStore.GetForUser(ctx, taskID, userID)
	if err != nil {
		// ErrTaskNotFound passes through untouched so missing and not-owned
		// stay indistinguishable.
		return nil, err
	}
	return task, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	taskID, userID uuid.UUID,
	patch domain.TaskPatch,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.IsEmpty() {
		log.Debug("update rejected: empty patch",
			slog.String("task_id", taskID.String()))
		return 0, ErrEmptyUpdate
	}

	if err := patch.Validate(); err != nil {
		log.Debug("update rejected by validation",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return 0, err
	}

	// Ownership assertion; fails ErrTaskNotFound for missing and not-owned
	// alike. The store filters the UPDATE by (id, user_id) again regardless.
	if _, err := s.GetOwned(ctx, taskID, userID); err != nil {
		return 0, err
	}

	updated, err := s.taskStore.Update(ctx, taskID, userID, patch)
	if err != nil {
		if _, ok := errAsValidation(err); ok {
			return 0, err
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()),
			slog.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task update applied",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()),
		slog.Int64("rows_changed", updated))

	return updated, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, taskID, userID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetOwned(ctx, taskID, userID); err != nil {
		return 0, err
	}

	deleted, err := s.taskStore.Delete(ctx, taskID, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()),
			slog.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	return deleted, nil
}

// errAsValidation reports whether err is a domain validation failure that
// should reach the caller unwrapped.
func errAsValidation(err error) (*domain.ValidationError, bool) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
