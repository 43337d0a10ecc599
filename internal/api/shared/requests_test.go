package shared_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/tarefas-api/internal/api/shared"
)

type samplePayload struct {
	Name  string `json:"nome"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func decode(t *testing.T, body string, dst interface{}) error {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	return shared.DecodeJSON(req, dst)
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes a well-formed body", func(t *testing.T) {
		t.Parallel()
		var got samplePayload
		err := decode(t, `{"nome":"Ana","email":"ana@example.com"}`, &got)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		t.Parallel()
		var got samplePayload
		err := decode(t, ``, &got)
		assert.ErrorContains(t, err, "must not be empty")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		var got samplePayload
		err := decode(t, `{"nome":`, &got)
		assert.Error(t, err)
	})

	t.Run("drops fields the destination does not declare", func(t *testing.T) {
		t.Parallel()
		var got samplePayload
		err := decode(t, `{"nome":"Ana","email":"a@b.c","intruso":true}`, &got)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, "a@b.c", got.Email)
	})

	t.Run("rejects trailing content", func(t *testing.T) {
		t.Parallel()
		var got samplePayload
		err := decode(t, `{"nome":"Ana","email":"a@b.c"}{"again":1}`, &got)
		assert.ErrorContains(t, err, "single JSON object")
	})

	t.Run("rejects a wrongly typed field", func(t *testing.T) {
		t.Parallel()
		var got samplePayload
		err := decode(t, `{"nome":42,"email":"a@b.c"}`, &got)
		assert.ErrorContains(t, err, "nome")
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	validate := shared.NewValidator()

	t.Run("passes a valid payload", func(t *testing.T) {
		t.Parallel()
		err := shared.ValidateRequest(validate, samplePayload{Name: "Ana", Email: "ana@example.com"})
		assert.NoError(t, err)
	})

	t.Run("reports the wire name of a missing field", func(t *testing.T) {
		t.Parallel()
		err := shared.ValidateRequest(validate, samplePayload{Email: "ana@example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nome")
	})

	t.Run("reports a malformed email", func(t *testing.T) {
		t.Parallel()
		err := shared.ValidateRequest(validate, samplePayload{Name: "Ana", Email: "not-an-email"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}
