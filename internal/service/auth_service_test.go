package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/config"
	"github.com/greenhaven/nursery-service/internal/domain"
)

// fakeUserRepository stores users in memory keyed by id.
type fakeUserRepository struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepository) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) List(context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, nil
}

func (f *fakeUserRepository) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	return result, nil
}

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLHours:   24,
			SessionTTLHours: 24,
			BcryptCost:      4, // minimum cost keeps tests fast
		},
	}
}

func TestRegister_ForcesCustomerRole(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewAuthService(testAuthConfig(), repo, nil, nil)
	ctx := context.Background()

	for _, claimed := range []string{"admin", "caretaker", "gardener", ""} {
		user, err := svc.Register(ctx, RegisterInput{
			Username: "user_" + claimed,
			Password: "hunter2",
			Email:    claimed + "@example.com",
			Role:     domain.Role(claimed),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, user.Role, "claimed role %q must collapse to customer", claimed)
	}
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewAuthService(testAuthConfig(), repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "pw", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "pw", Email: "other@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username already exists")
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewAuthService(testAuthConfig(), repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "pw", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "bob", Password: "pw", Email: "alice@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestRegister_RequiresMandatoryFields(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepository(), nil, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice"})
	assert.Error(t, err)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewAuthService(testAuthConfig(), repo, nil, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "hunter2", Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}
