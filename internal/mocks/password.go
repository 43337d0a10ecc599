package mocks

import (
	"errors"

	"github.com/taskforge/tarefas-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// It produces a reversible marker instead of a real hash so tests can
// assert on what was stored without paying bcrypt cost.
type MockPasswordHasher struct {
	HashFn  func(password string) (string, error)
	HashErr error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// Its default behavior matches MockPasswordHasher's marker format.
type MockPasswordVerifier struct {
	CompareFn  func(hashedPassword, password string) error
	CompareErr error
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareErr != nil {
		return m.CompareErr
	}
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}
