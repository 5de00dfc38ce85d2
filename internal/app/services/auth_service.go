package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	pkgAuth "github.com/Sujith8257/hostel-ms-sub000/internal/pkg/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profileID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error)
}

// profileStore is the profile persistence surface the auth service needs
type profileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// tokenStore is the refresh token persistence surface
type tokenStore interface {
	CreateToken(ctx context.Context, token string, profileID uuid.UUID, expiryDate time.Time) error
	GetTokenProfile(ctx context.Context, token string) (uuid.UUID, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllProfileTokens(ctx context.Context, profileID uuid.UUID) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	profiles   profileStore
	tokens     tokenStore
	jwtService *pkgAuth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(profiles profileStore, tokens tokenStore, jwtService *pkgAuth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		profiles:   profiles,
		tokens:     tokens,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Signup registers a new account. Self-service registrations always get the
// student role, staff accounts are created by an admin.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := pkgAuth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		Email:    email,
		Password: hashed,
		FullName: strings.TrimSpace(req.FullName),
		Role:     models.RoleStudent,
		IsActive: true,
	}
	if req.Phone != "" {
		profile.Phone = &req.Phone
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("New account registered")

	return s.issueTokens(ctx, profile)
}

// Login authenticates credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			// Same error as a bad password, do not leak account existence
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !pkgAuth.CheckPassword(profile.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.profiles.UpdateLastLogin(ctx, profile.ID); err != nil {
		s.logger.Warn().Err(err).Str("profileID", profile.ID.String()).Msg("Failed to update last login time")
	}

	return s.issueTokens(ctx, profile)
}

// RefreshToken rotates a refresh token: the old token is revoked and a new
// pair is issued.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	profileID, err := s.tokens.GetTokenProfile(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, expiresIn, _, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.CreateToken(ctx, newRefreshToken, profile.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}

// Logout revokes the given refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokens.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// GetProfile retrieves a profile by ID
func (s *authServiceImpl) GetProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, profileID)
}

// UpdateProfile updates the caller's own name and phone
func (s *authServiceImpl) UpdateProfile(ctx context.Context, profileID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, _, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.CreateToken(ctx, refreshToken, profile.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    expiresIn,
		},
		Profile: ProfileToResponse(profile),
	}, nil
}

// ProfileToResponse maps a profile model to its API representation
func ProfileToResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Role:        string(p.Role),
		Phone:       p.Phone,
		IsActive:    p.IsActive,
		LastLoginAt: p.LastLoginAt,
		CreatedAt:   p.CreatedAt,
	}
}
