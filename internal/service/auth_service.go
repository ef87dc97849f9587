package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/greenhaven/nursery-service/internal/auth"
	"github.com/greenhaven/nursery-service/internal/config"
	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/events"
	"github.com/greenhaven/nursery-service/internal/repository"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// RegisterInput carries the self-registration form fields.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	Role      domain.Role
	FirstName string
	LastName  string
	Phone     *string
}

// AuthService coordinates registration, login and session lifecycle.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionManager
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, sessions *auth.SessionManager, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. Self-registration may not claim a
// privileged role; anything other than an explicit admin/caretaker grant
// collapses to customer.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, apperrors.NewValidationError("username, email and password are required", nil)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewValidationError("Username already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewValidationError("Email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role := input.Role
	if role == domain.RoleAdmin || role == domain.RoleCaretaker || !role.Valid() {
		role = domain.RoleCustomer
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Role:         role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by username and issues both a server-side session and
// a bearer token, mirroring the storefront's dual credential model.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", "", apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, "", "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", "", apperrors.NewUnauthorized("Invalid credentials")
	}

	sessionID, err := s.sessions.Create(ctx, domain.IdentityOf(user))
	if err != nil {
		return nil, "", "", err
	}
	token, _, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, sessionID, token, nil
}

// Logout destroys the server-side session; an unknown id is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionID)
}

// Profile fetches the authoritative user record for the bearer path.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// SessionTTL exposes the session lifetime for cookie expiry alignment.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessions.TTL()
}

// TokenTTL exposes the bearer token lifetime for cookie expiry alignment.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenMgr.TTL()
}

// RegisterSessionEviction subscribes a handler that destroys every session
// of a mutated or deleted user, so session identities cannot drift from the
// authoritative row.
func (s *AuthService) RegisterSessionEviction(logger *zap.Logger) {
	if s.dispatcher == nil {
		return
	}
	evict := func(ctx context.Context, event events.Event) error {
		if err := s.sessions.DestroyAllForUser(ctx, event.UserID); err != nil {
			logger.Warn("session eviction failed", zap.Int64("user_id", event.UserID), zap.Error(err))
		}
		return nil
	}
	s.dispatcher.Subscribe(events.EventUserUpdated, evict)
	s.dispatcher.Subscribe(events.EventUserDeleted, evict)
}
