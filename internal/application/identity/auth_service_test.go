package identity

import (
	"context"
	"testing"
	"time"

	"github.com/minimart/backend/internal/domain/identity"
	"github.com/minimart/backend/internal/domain/shared"
	"github.com/minimart/backend/internal/infrastructure/auth"
	"github.com/minimart/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user *identity.User) (*identity.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func newTokenService() *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret: "test-secret-at-least-32-chars-long!!",
		Issuer: "minimart-test",
	})
}

func newAuthService(repo *MockUserRepository, blacklist auth.TokenBlacklist) *AuthService {
	return NewAuthService(repo, newTokenService(), blacklist, zap.NewNop())
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestRegister(t *testing.T) {
	t.Run("creates a user with hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Email == "ana@example.com" && u.PasswordHash != "" && u.PasswordHash != "supersecret"
		})).Return(&identity.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}, nil)

		result, err := newAuthService(repo, nil).Register(context.Background(), RegisterInput{
			Name: "Ana", Email: "ana@example.com", Password: "supersecret",
		})

		require.NoError(t, err)
		assert.Equal(t, "u1", result.ID)
		assert.Equal(t, "ana@example.com", result.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ana@example.com").
			Return(&identity.User{ID: "u1", Email: "ana@example.com"}, nil)

		_, err := newAuthService(repo, nil).Register(context.Background(), RegisterInput{
			Name: "Ana", Email: "ana@example.com", Password: "supersecret",
		})

		assert.Equal(t, "ALREADY_EXISTS", domainCode(t, err))
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	storedUser := func(t *testing.T) *identity.User {
		t.Helper()
		user, err := identity.NewUser("Ana", "ana@example.com", "supersecret")
		require.NoError(t, err)
		user.ID = "65f1c7a2b3d4e5f60718293a"
		return user
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(storedUser(t), nil)

		svc := newAuthService(repo, nil)
		result, err := svc.Login(context.Background(), LoginInput{
			Email: "ana@example.com", Password: "supersecret",
		})

		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "65f1c7a2b3d4e5f60718293a", result.UserID)

		claims, err := newTokenService().Resolve(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "65f1c7a2b3d4e5f60718293a", claims.Subject)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		unknownRepo := new(MockUserRepository)
		unknownRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		wrongRepo := new(MockUserRepository)
		wrongRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(storedUser(t), nil)

		_, errUnknown := newAuthService(unknownRepo, nil).Login(context.Background(), LoginInput{
			Email: "ghost@example.com", Password: "supersecret",
		})
		_, errWrong := newAuthService(wrongRepo, nil).Login(context.Background(), LoginInput{
			Email: "ana@example.com", Password: "wrong-password",
		})

		assert.Equal(t, "UNAUTHORIZED", domainCode(t, errUnknown))
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, errWrong))
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestCurrentUser(t *testing.T) {
	t.Run("returns the user record", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, "u1").
			Return(&identity.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}, nil)

		result, err := newAuthService(repo, nil).CurrentUser(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "Ana", result.Name)
	})

	t.Run("fails when the user is gone", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, "u1").Return(nil, nil)

		_, err := newAuthService(repo, nil).CurrentUser(context.Background(), "u1")

		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
	})
}

func TestLogout(t *testing.T) {
	t.Run("blacklists the token jti", func(t *testing.T) {
		blacklist := auth.NewMemoryTokenBlacklist()
		svc := newAuthService(new(MockUserRepository), blacklist)

		err := svc.Logout(context.Background(), LogoutInput{TokenJTI: "jti-1", TTL: time.Minute})
		require.NoError(t, err)

		blacklisted, err := blacklist.IsBlacklisted(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("nil blacklist makes logout a no-op", func(t *testing.T) {
		svc := newAuthService(new(MockUserRepository), nil)
		assert.NoError(t, svc.Logout(context.Background(), LogoutInput{TokenJTI: "jti-1", TTL: time.Minute}))
	})
}
