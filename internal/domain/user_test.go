package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/tarefas-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		user, err := domain.NewUser("Ana", "a@x.com", "secret123")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Ana", user.Name)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, "secret123", user.Password)
		assert.Empty(t, user.HashedPassword)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("trims name and email", func(t *testing.T) {
		user, err := domain.NewUser("  Ana  ", " a@x.com ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name)
		assert.Equal(t, "a@x.com", user.Email)
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "empty name",
			userName: "",
			email:    "a@x.com",
			password: "secret123",
			wantErr:  domain.ErrEmptyName,
		},
		{
			name:     "empty email",
			userName: "Ana",
			email:    "",
			password: "secret123",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "malformed email",
			userName: "Ana",
			email:    "not-an-email",
			password: "secret123",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			userName: "Ana",
			email:    "a@localhost",
			password: "secret123",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "empty password",
			userName: "Ana",
			email:    "a@x.com",
			password: "",
			wantErr:  domain.ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := domain.NewUser(tt.userName, tt.email, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
		})
	}
}

func TestUserValidate_StoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has no plaintext password, only a hash.
	user := &domain.User{
		ID:             uuid.New(),
		Name:           "Ana",
		Email:          "a@x.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}
