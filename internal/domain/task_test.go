package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/tarefas-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid task with defaults", func(t *testing.T) {
		task, err := domain.NewTask(userID, "Buy milk", "", "")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, userID, task.UserID)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("explicit status is kept", func(t *testing.T) {
		task, err := domain.NewTask(userID, "Buy milk", "2 liters", domain.TaskStatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, task.Status)
		assert.Equal(t, "2 liters", task.Description)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		task, err := domain.NewTask(userID, "  Buy milk  ", "", "")
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
	})

	tests := []struct {
		name    string
		userID  uuid.UUID
		title   string
		status  domain.TaskStatus
		wantErr error
	}{
		{
			name:    "empty title",
			userID:  userID,
			title:   "",
			wantErr: domain.ErrEmptyTaskTitle,
		},
		{
			name:    "blank title after trimming",
			userID:  userID,
			title:   "   ",
			wantErr: domain.ErrEmptyTaskTitle,
		},
		{
			name:    "missing owner",
			userID:  uuid.Nil,
			title:   "Buy milk",
			wantErr: domain.ErrEmptyTaskUserID,
		},
		{
			name:    "unknown status",
			userID:  userID,
			title:   "Buy milk",
			status:  "bogus",
			wantErr: domain.ErrInvalidTaskStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := domain.NewTask(tt.userID, tt.title, "", tt.status)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, task)
		})
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	t.Parallel()

	for _, status := range domain.AllowedTaskStatuses() {
		assert.True(t, domain.IsValidTaskStatus(status), string(status))
	}
	assert.False(t, domain.IsValidTaskStatus(""))
	assert.False(t, domain.IsValidTaskStatus("concluida"))
	assert.False(t, domain.IsValidTaskStatus("DONE"))
}

func TestStatusValidationError(t *testing.T) {
	t.Parallel()

	err := domain.StatusValidationError("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
	assert.Contains(t, vErr.Message, "pending, in_progress, done")
}
