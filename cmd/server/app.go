package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskforge/tarefas-api/internal/config"
	"github.com/taskforge/tarefas-api/internal/platform/postgres"
	"github.com/taskforge/tarefas-api/internal/service"
	"github.com/taskforge/tarefas-api/internal/service/auth"
	"github.com/taskforge/tarefas-api/internal/store"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup on shutdown can reach everything.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService
}

// newApplication creates an application instance with all dependencies
// initialized. The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userStore = postgres.NewUserStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	app.userService, err = service.NewUserService(
		app.userStore,
		db,
		hasher,
		verifier,
		app.jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
