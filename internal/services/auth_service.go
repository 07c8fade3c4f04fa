package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vocabtracker/backend/internal/auth"
	"github.com/vocabtracker/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is assigned on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, the error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements AuthService
type authService struct {
	userRepo    UserRepository
	tokenIssuer *auth.TokenIssuer
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenIssuer *auth.TokenIssuer, logger *zap.Logger) *authService {
	return &authService{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account and returns an access token
func (s *authService) Register(ctx context.Context, req *models.AuthRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check email existence", zap.Error(err))
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("user with this email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	token, err := s.tokenIssuer.Generate(user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

// Login authenticates a user and returns an access token
func (s *authService) Login(ctx context.Context, req *models.AuthRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := s.tokenIssuer.Generate(user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}
