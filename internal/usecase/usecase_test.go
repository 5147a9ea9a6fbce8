package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/internal/usecase"
	"go-devnetwork-backend/pkg/apperror"
	"go-devnetwork-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func newTokenService() *token.Service {
	return token.NewService("test-secret", 10*time.Hour)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := newTokenService()

	stored := &domain.User{
		ID:       "user-1",
		Email:    "a@x.com",
		Password: hashOf(t, "secret123"),
	}

	t.Run("valid credentials return a verifiable token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "a@x.com").Return(stored, nil)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		signed, err := uc.Login(ctx, "a@x.com", "secret123")
		assert.NoError(t, err)

		id, err := tokens.Verify(signed)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", id.UserID)
	})

	t.Run("wrong password yields Invalid Credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "a@x.com").Return(stored, nil)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		_, err := uc.Login(ctx, "a@x.com", "wrong")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, []string{"Invalid Credentials"}, appErr.Errors)
	})

	t.Run("unknown email yields the same error as wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "nobody@x.com").Return(nil, domain.ErrNotFound)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		_, err := uc.Login(ctx, "nobody@x.com", "secret123")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, []string{"Invalid Credentials"}, appErr.Errors)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	tokens := newTokenService()

	t.Run("creates user with hashed password and returns token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "new@x.com").Return(nil, domain.ErrNotFound)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NotEqual(t, "secret123", u.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
			assert.NotEmpty(t, u.Avatar)
		})
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		signed, err := uc.Register(ctx, "New User", "new@x.com", "secret123")
		assert.NoError(t, err)

		_, err = tokens.Verify(signed)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("existing email is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("GetByEmail", ctx, "a@x.com").Return(&domain.User{ID: "user-1"}, nil)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		_, err := uc.Register(ctx, "Someone", "a@x.com", "secret123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User already exists")
	})
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, usecase.SplitSkills("a, b ,c"))
	assert.Equal(t, []string{"Go"}, usecase.SplitSkills("Go"))
	assert.Equal(t, []string{"Go", "SQL"}, usecase.SplitSkills("Go,,SQL,"))
	assert.Empty(t, usecase.SplitSkills(""))
}
