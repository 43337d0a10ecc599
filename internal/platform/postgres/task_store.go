package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/platform/logger"
	"github.com/taskforge/tarefas-api/internal/store"
)

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
//
// Every query filters on usuario_id so ownership is enforced here, not just
// in the service layer.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
// The service validates the status before we get here; the enum constraint on
// the status column is defense in depth, and its rejection is mapped back to
// the same allowed-values validation error.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tarefas (id, titulo, descricao, status, usuario_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsEnumViolation(err) {
			log.Warn("database rejected task status",
				slog.String("task_id", task.ID.String()),
				slog.String("status", string(task.Status)))
			return domain.StatusValidationError(task.Status)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// ListByUserID implements store.TaskStore.ListByUserID
// Returns the user's tasks newest first; an empty slice if there are none.
func (s *TaskStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, titulo, descricao, status, usuario_id, created_at, updated_at
		FROM tarefas
		WHERE usuario_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}

// GetForUser implements store.TaskStore.GetForUser
// The WHERE clause matches id and usuario_id jointly, so a task owned by
// someone else produces the same ErrTaskNotFound as a missing one.
func (s *TaskStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, titulo, descricao, status, usuario_id, created_at, updated_at
		FROM tarefas
		WHERE id = $1 AND usuario_id = $2
	`

	task, err := scanTask(func(dest ...any) error {
		return s.db.QueryRowContext(ctx, query, id, userID).Scan(dest...)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for user",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// It builds the SET clause from the non-nil patch fields and always stamps
// updated_at. Returns the number of rows changed; zero means no owned row
// matched and is reported as-is, not as an error.
func (s *TaskStore) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	patch domain.TaskPatch,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return 0, err
	}

	set := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if patch.Title != nil {
		args = append(args, strings.TrimSpace(*patch.Title))
		set = append(set, fmt.Sprintf("titulo = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		set = append(set, fmt.Sprintf("descricao = $%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}

	args = append(args, time.Now().UTC())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id, userID)
	query := fmt.Sprintf(
		"UPDATE tarefas SET %s WHERE id = $%d AND usuario_id = $%d",
		strings.Join(set, ", "),
		len(args)-1,
		len(args),
	)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if IsEnumViolation(err) && patch.Status != nil {
			log.Warn("database rejected task status on update",
				slog.String("task_id", id.String()),
				slog.String("status", string(*patch.Status)))
			return 0, domain.StatusValidationError(*patch.Status)
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// Delete implements store.TaskStore.Delete
// Returns the number of rows deleted (0 or 1).
func (s *TaskStore) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tarefas
		WHERE id = $1 AND usuario_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		log.Info("task deleted",
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
	}

	return rowsAffected, nil
}

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanTask reads one task row using the provided scan function. The caller
// supplies either rows.Scan or a QueryRow-backed closure.
func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
	)

	err := scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
