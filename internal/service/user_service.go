package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskforge/tarefas-api/internal/domain"
	"github.com/taskforge/tarefas-api/internal/platform/logger"
	"github.com/taskforge/tarefas-api/internal/service/auth"
	"github.com/taskforge/tarefas-api/internal/store"
)

// UserService provides registration, login and user lookup business rules.
type UserService interface {
	// Register creates a new account. The duplicate-email check runs before
	// any hash is computed; the returned user carries no password material.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Login verifies the credentials and issues a token. Unknown email and
	// wrong password both fail with ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// GetUser retrieves a user by ID with password material stripped.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore  store.UserStore
	db         *sql.DB
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		db:         db,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(
	ctx context.Context,
	name, email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		log.Debug("registration rejected by validation",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Cheap existence check first, so a duplicate fails before the hash is
	// computed. The unique index remains the authoritative guard for races.
	_, err = s.userStore.GetByEmail(ctx, user.Email)
	if err == nil {
		log.Debug("attempted to register existing email")
		return nil, store.ErrEmailExists
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Error("failed to check email availability",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.userStore.WithTx(tx).Create(ctx, user)
		})
	} else {
		err = s.userStore.Create(ctx, user)
	}

	if err != nil {
		// Two registrations can race past the existence check; the insert's
		// unique violation collapses to the same conflict outcome.
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration lost duplicate-email race")
			return nil, store.ErrEmailExists
		}
		log.Error("failed to persist user",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()))

	return stripPassword(user), nil
}

// Login implements UserService.Login
func (s *userServiceImpl) Login(
	ctx context.Context,
	email, password string,
) (string, *domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login",
			slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password",
			slog.String("user_id", user.ID.String()))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID.String()))

	return token, stripPassword(user), nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found",
				slog.String("user_id", userID.String()))
			return nil, err
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return stripPassword(user), nil
}

// stripPassword returns a copy with all password material removed.
// The hash never leaves the service boundary.
func stripPassword(user *domain.User) *domain.User {
	stripped := *user
	stripped.Password = ""
	stripped.HashedPassword = ""
	return &stripped
}
