package identity

import (
	"context"

	"github.com/minimart/backend/internal/domain/identity"
	"github.com/minimart/backend/internal/domain/shared"
	"github.com/minimart/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo     identity.UserRepository
	tokenService *auth.TokenService
	blacklist    auth.TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service. The blacklist is
// optional; a nil blacklist makes logout a no-op.
func NewAuthService(
	userRepo identity.UserRepository,
	tokenService *auth.TokenService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// Register creates a new user account with a hashed password
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check existing email", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email already registered")
	}

	user, err := identity.NewUser(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		s.logger.Error("Failed to insert user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", created.ID),
		zap.String("email", created.Email))

	return toUserResponse(created), nil
}

// Login verifies credentials and issues an access token. The failure is
// deliberately identical for unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to look up user for login", zap.Error(err))
		return nil, err
	}

	if user == nil || !user.VerifyPassword(input.Password) {
		s.logger.Warn("Failed login attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	issued, err := s.tokenService.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue authentication token")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))

	return &LoginResult{
		AccessToken: issued.Token,
		TokenType:   issued.TokenType,
		ExpiresAt:   issued.ExpiresAt,
		UserID:      user.ID,
	}, nil
}

// CurrentUser resolves a user id from a verified token to its full record
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "User no longer exists")
	}
	return toUserResponse(user), nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.Add(ctx, input.TokenJTI, input.TTL); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}
	return nil
}
