package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/auth"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/validation"
)

// authUserRepository is the slice of the user repository auth needs.
type authUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetWithProfile(ctx context.Context, id int64) (*models.User, error)
}

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authServiceImpl struct {
	userRepo   authUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo authUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an account with an empty profile and signs the user in.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewBadRequestError("invalid email address")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewBadRequestError("password must be at least 8 characters and contain a letter and a digit")
	}
	if !validation.IsValidName(req.FirstName) || !validation.IsValidName(req.LastName) {
		return nil, apperrors.NewBadRequestError("first and last name are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("email", email).Msg("User registered")

	return s.buildAuthResponse(ctx, userID, email)
}

// Login verifies credentials and issues a token pair.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a bad password so login does not leak which
			// emails have accounts.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Debug().Int64("userID", user.ID).Msg("User logged in")

	return s.buildAuthResponse(ctx, user.ID, user.Email)
}

func (s *authServiceImpl) buildAuthResponse(ctx context.Context, userID int64, email string) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(userID, email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: dto.NewUserResponse(user),
		Token: dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    expiresIn,
			TokenType:    "Bearer",
		},
	}, nil
}
