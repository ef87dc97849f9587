package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/greenhaven/nursery-service/internal/auth"
	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/events"
	"github.com/greenhaven/nursery-service/internal/repository"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// UserService is the admin-facing account management surface.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// CreateUserInput carries admin user creation fields; unlike registration,
// any valid role may be granted.
type CreateUserInput struct {
	Username  string
	Password  string
	Email     string
	Role      domain.Role
	FirstName string
	LastName  string
	Phone     *string
}

// UpdateUserInput carries the mutable profile fields.
type UpdateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	Role      domain.Role
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return s.users.ListByRole(ctx, role)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// Create adds an account with an explicit role.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" ||
		input.FirstName == "" || input.LastName == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role specified", nil)
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

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Role:         input.Role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update mutates profile fields and evicts the user's sessions via the
// user_updated event.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Phone = input.Phone
	if input.Role.Valid() {
		user.Role = input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{Type: events.EventUserUpdated, UserID: id, Timestamp: time.Now()})
	return user, nil
}

// Delete removes the account and evicts its sessions.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	s.publish(ctx, events.Event{Type: events.EventUserDeleted, UserID: id, Timestamp: time.Now()})
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
