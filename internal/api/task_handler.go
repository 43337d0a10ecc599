package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskforge/tarefas-api/internal/api/middleware"
	"github.com/taskforge/tarefas-api/internal/api/shared"
	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/service"
)

// TaskHandler handles task CRUD for the authenticated caller. The owner is
// always the identity from the verified token; request bodies and URLs never
// name an owner.
type TaskHandler struct {
	taskService service.TaskService
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		panic("taskService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &TaskHandler{
		taskService: taskService,
		validate:    shared.NewValidator(),
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tarefas.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var req TaskCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(h.validate, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, req.Title, req.Description, domain.TaskStatus(req.Status))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, http.StatusCreated, task)
}

// List handles GET /tarefas.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	tasks, err := h.taskService.List(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, tasks)
}

// Get handles GET /tarefas/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// An unparseable ID cannot name any task the caller owns.
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.taskService.GetOwned(r.Context(), taskID, userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, task)
}

// Update handles PUT /tarefas/{id}. A patch that matches zero rows yields
// 304 Not Modified rather than an error.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	var req TaskUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}

	rows, err := h.taskService.Update(r.Context(), taskID, userID, patch)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if rows == 0 {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	task, err := h.taskService.GetOwned(r.Context(), taskID, userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, http.StatusOK, TaskUpdateResponse{
		Message: "Tarefa atualizada com sucesso",
		Task:    task,
	})
}

// Delete handles DELETE /tarefas/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	if _, err := h.taskService.Delete(r.Context(), taskID, userID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}
