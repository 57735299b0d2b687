package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
	"github.com/selim/alumnihub/internal/pkg/auth"
	"github.com/selim/alumnihub/internal/pkg/validation"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	userStore    UserStore
	profileStore ProfileStore
	tokenStore   TokenStore
	transactor   Transactor
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore UserStore,
	profileStore ProfileStore,
	tokenStore TokenStore,
	transactor Transactor,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userStore:    userStore,
		profileStore: profileStore,
		tokenStore:   tokenStore,
		transactor:   transactor,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Register creates a new account with its initial empty profile. The user
// row and the profile row are written in one transaction.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.ValidateEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidPassword, err.Error())
	}
	if !validation.ValidateName(req.FirstName) || !validation.ValidateName(req.LastName) {
		return nil, apperrors.NewBadRequestError("first and last name are required")
	}

	// Admin accounts are seeded, never self-registered
	switch req.Role {
	case models.RoleStudent, models.RoleAlumni:
	default:
		return nil, apperrors.NewBadRequestError("role must be student or alumni")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		Role:     req.Role,
		Status:   models.UserActive,
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.userStore.Create(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		profile := &models.Profile{
			UserID:    userID,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}
		if _, err := s.profileStore.Create(ctx, tx, profile); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User registered")

	return &dto.RegisterResponse{UserID: user.ID, Email: user.Email}, nil
}

// Login verifies credentials and issues a token set
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Int64("userId", user.ID).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserActive {
		return nil, apperrors.ErrAccountInactive
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token and issues a fresh token set
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	stored, err := s.tokenStore.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("error finding refresh token: %w", err)
	}
	if stored == nil {
		return nil, apperrors.ErrTokenNotFound
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenStore.Delete(ctx, req.RefreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userStore.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Status != models.UserActive {
		return nil, apperrors.ErrAccountInactive
	}

	// Rotation: the presented token is single use
	if err := s.tokenStore.Delete(ctx, req.RefreshToken); err != nil {
		return nil, fmt.Errorf("error deleting refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	if err := s.tokenStore.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	accessToken, refreshToken, csrfToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	err = s.tokenStore.Create(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		CSRFToken:    csrfToken,
		ExpiresIn:    expiresIn,
		UserID:       user.ID,
		Role:         string(user.Role),
	}, nil
}
