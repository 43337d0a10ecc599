package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/tarefas-api/internal/api"
	"github.com/taskforge/tarefas-api/internal/api/shared"
	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/mocks"
	"github.com/taskforge/tarefas-api/internal/service"
	"github.com/taskforge/tarefas-api/internal/store"
)

// newTaskRouter mounts the task routes behind a middleware that injects the
// given identity, standing in for the real token verification.
func newTaskRouter(svc service.TaskService, caller uuid.UUID) *chi.Mux {
	h := api.NewTaskHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := shared.WithIdentity(req.Context(), shared.Identity{
				UserID: caller,
				Email:  "caller@example.com",
			})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/tarefas", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTaskHandler_Create(t *testing.T) {
	t.Parallel()

	caller := uuid.New()

	t.Run("creates with caller as owner and returns 201", func(t *testing.T) {
		t.Parallel()

		var gotOwner uuid.UUID
		svc := &mocks.MockTaskService{
			CreateFn: func(_ context.Context, userID uuid.UUID, title, description string, status domain.TaskStatus) (*domain.Task, error) {
				gotOwner = userID
				return domain.NewTask(userID, title, description, status)
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodPost, "/tarefas",
			`{"titulo":"Comprar leite","descricao":"integral"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, caller, gotOwner, "owner must come from the token, not the body")

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Comprar leite", got["titulo"])
		assert.Equal(t, string(domain.TaskStatusPending), got["status"])
		assert.Equal(t, caller.String(), got["usuarioId"])
	})

	t.Run("a usuarioId in the body is ignored and the caller stays the owner", func(t *testing.T) {
		t.Parallel()

		var gotOwner uuid.UUID
		svc := &mocks.MockTaskService{
			CreateFn: func(_ context.Context, userID uuid.UUID, title, description string, status domain.TaskStatus) (*domain.Task, error) {
				gotOwner = userID
				return domain.NewTask(userID, title, description, status)
			},
		}
		router := newTaskRouter(svc, caller)

		spoofed := uuid.NewString()
		rec := doJSON(t, router, http.MethodPost, "/tarefas",
			`{"titulo":"Comprar leite","usuarioId":"`+spoofed+`"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, caller, gotOwner)
		assert.Contains(t, rec.Body.String(), `"usuarioId":"`+caller.String()+`"`)
		assert.NotContains(t, rec.Body.String(), spoofed)
	})

	t.Run("blank title yields 400", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			CreateFn: func(_ context.Context, _ uuid.UUID, _, _ string, _ domain.TaskStatus) (*domain.Task, error) {
				return nil, domain.NewValidationError("titulo", "cannot be blank", domain.ErrEmptyTaskTitle)
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodPost, "/tarefas", `{"titulo":"   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown status yields 400 naming the allowed values", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			CreateFn: func(_ context.Context, _ uuid.UUID, _, _ string, status domain.TaskStatus) (*domain.Task, error) {
				return nil, domain.StatusValidationError(status)
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodPost, "/tarefas",
			`{"titulo":"x","status":"arquivada"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "pending")
		assert.Contains(t, rec.Body.String(), "in_progress")
		assert.Contains(t, rec.Body.String(), "done")
	})
}

func TestTaskHandler_List(t *testing.T) {
	t.Parallel()

	caller := uuid.New()

	t.Run("returns the caller's tasks", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(caller, "Estudar", "", domain.TaskStatusInProgress)
		require.NoError(t, err)

		svc := &mocks.MockTaskService{
			ListFn: func(_ context.Context, userID uuid.UUID) ([]*domain.Task, error) {
				require.Equal(t, caller, userID)
				return []*domain.Task{task}, nil
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodGet, "/tarefas", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Estudar")
	})

	t.Run("no tasks serializes as an empty array, not null", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{}, caller)

		rec := doJSON(t, router, http.MethodGet, "/tarefas", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestTaskHandler_Get(t *testing.T) {
	t.Parallel()

	caller := uuid.New()

	t.Run("missing and foreign tasks are both 404", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			GetOwnedFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodGet, "/tarefas/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task not found")
	})

	t.Run("malformed id yields 404 like any task the caller does not own", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mocks.MockTaskService{}, caller)

		rec := doJSON(t, router, http.MethodGet, "/tarefas/42", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	taskID := uuid.New()

	t.Run("applied update returns 200 with the fresh task", func(t *testing.T) {
		t.Parallel()

		updated, err := domain.NewTask(caller, "Novo titulo", "", domain.TaskStatusDone)
		require.NoError(t, err)
		updated.ID = taskID

		svc := &mocks.MockTaskService{
			UpdateFn: func(_ context.Context, id, userID uuid.UUID, patch domain.TaskPatch) (int64, error) {
				require.Equal(t, taskID, id)
				require.Equal(t, caller, userID)
				require.NotNil(t, patch.Title)
				assert.Equal(t, "Novo titulo", *patch.Title)
				require.NotNil(t, patch.Status)
				assert.Equal(t, domain.TaskStatusDone, *patch.Status)
				assert.Nil(t, patch.Description)
				return 1, nil
			},
			GetOwnedFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Task, error) {
				return updated, nil
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodPut, "/tarefas/"+taskID.String(),
			`{"titulo":"Novo titulo","status":"done"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var got api.TaskUpdateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.Message)
		require.NotNil(t, got.Task)
		assert.Equal(t, "Novo titulo", got.Task.Title)
	})

	t.Run("update matching zero rows yields 304", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			UpdateFn: func(_ context.Context, _, _ uuid.UUID, _ domain.TaskPatch) (int64, error) {
				return 0, nil
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodPut, "/tarefas/"+taskID.String(),
			`{"titulo":"x"}`)

		assert.Equal(t, http.StatusNotModified, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("empty patch yields 400", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			UpdateFn: func(_ context.Context, _, _ uuid.UUID, _ domain.TaskPatch) (int64, error) {
				return 0, service.ErrEmptyUpdate
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodPut, "/tarefas/"+taskID.String(), `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("updating a foreign task yields 404", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			UpdateFn: func(_ context.Context, _, _ uuid.UUID, _ domain.TaskPatch) (int64, error) {
				return 0, store.ErrTaskNotFound
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodPut, "/tarefas/"+taskID.String(),
			`{"titulo":"hijack"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Parallel()

	caller := uuid.New()

	t.Run("returns 204 with no body", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			DeleteFn: func(_ context.Context, _, _ uuid.UUID) (int64, error) {
				return 1, nil
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodDelete, "/tarefas/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("deleting a foreign task yields 404", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockTaskService{
			DeleteFn: func(_ context.Context, _, _ uuid.UUID) (int64, error) {
				return 0, store.ErrTaskNotFound
			},
		}
		router := newTaskRouter(svc, caller)

		rec := doJSON(t, router, http.MethodDelete, "/tarefas/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
