package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest represents user login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"warden@hostel.edu"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// SignupRequest represents a new account registration.
// Self-service signups always receive the student role.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@hostel.edu"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	FullName string `json:"full_name" binding:"required,min=2,max=100" example:"Ravi Kumar"`
	Phone    string `json:"phone" binding:"omitempty,len=10,numeric" example:"9876543210"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResponse is returned on login and signup
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// ProfileResponse represents a user profile in API responses
type ProfileResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Phone       *string    `json:"phone,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UpdateProfileRequest represents profile self-update fields
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,len=10,numeric"`
}
