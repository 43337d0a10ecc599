package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskforge/tarefas-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Ownership is enforced at this layer: every read, update and delete filters
// on (id, user_id) jointly, so a task ID alone never grants access. A buggy
// or bypassed service call still cannot cross tenant boundaries as long as
// this contract is honored.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid,
	// including a database-level status rejection mapped back to the same
	// allowed-values error the pre-persistence check produces.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUserID retrieves all tasks owned by the given user, newest first.
	// Returns an empty slice if the user has no tasks.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetForUser retrieves the task with the given ID only if it is owned by
	// userID. Returns ErrTaskNotFound both when no such task exists and when
	// it belongs to another user; callers cannot tell the two apart.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// Update applies the patch to the task matching (id, userID) and returns
	// the number of rows changed (0 or 1). Zero is not an error: it means no
	// owned row matched, which callers surface as an unmodified outcome.
	Update(ctx context.Context, id, userID uuid.UUID, patch domain.TaskPatch) (int64, error)

	// Delete removes the task matching (id, userID) and returns the number of
	// rows deleted (0 or 1).
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
