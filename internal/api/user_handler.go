package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskforge/tarefas-api/internal/api/shared"
	"github.com/taskforge/tarefas-api/internal/service"
)

// UserHandler handles account registration, login and lookup.
type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler. Panics on nil dependencies since
// these wiring mistakes should fail at startup, not at request time.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &UserHandler{
		userService: userService,
		validate:    shared.NewValidator(),
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /usuarios/cadastro.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(h.validate, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user registered",
		slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, http.StatusCreated, user)
}

// Login handles POST /usuarios/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(h.validate, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in",
		slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// GetUser handles GET /usuarios/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid identifier")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, user)
}
