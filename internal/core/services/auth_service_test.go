package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newAuth() (*AuthService, *MockUserRepository) {
	mockRepo := new(MockUserRepository)
	tokens := NewTokenService("auth-test-secret", "kanso-test", time.Hour, mockRepo)
	return NewAuthService(mockRepo, tokens), mockRepo
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		service, mockRepo := newAuth()
		ctx := context.Background()

		input := RegisterInput{
			Email:    "test_success@kanso.app",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, input.Email, user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		service, mockRepo := newAuth()

		user, err := service.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "pass"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		service, mockRepo := newAuth()

		user, err := service.Register(context.Background(), RegisterInput{Email: "valid@email.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		service, mockRepo := newAuth()
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, RegisterInput{Email: "duplicate@email.com", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	stored, err := domain.NewUser("user-1", "login@kanso.app")
	require.NoError(t, err)
	require.NoError(t, stored.SetPassword("CorrectHorse1"))

	t.Run("Success: Returns a token that validates back to the user", func(t *testing.T) {
		service, mockRepo := newAuth()

		mockRepo.On("GetByEmail", ctx, "login@kanso.app").Return(stored, nil)
		mockRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

		token, user, err := service.Login(ctx, LoginInput{Email: " Login@Kanso.app ", Password: "CorrectHorse1"})

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)

		userID, err := service.tokens.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		service, mockRepo := newAuth()

		mockRepo.On("GetByEmail", ctx, "login@kanso.app").Return(stored, nil)

		_, _, err := service.Login(ctx, LoginInput{Email: "login@kanso.app", Password: "WrongHorse1"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Unknown email looks like a wrong password", func(t *testing.T) {
		service, mockRepo := newAuth()

		mockRepo.On("GetByEmail", ctx, "ghost@kanso.app").Return(nil, domain.ErrUserNotFound)

		_, _, err := service.Login(ctx, LoginInput{Email: "ghost@kanso.app", Password: "whatever1"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
