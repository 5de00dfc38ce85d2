package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appAuth "github.com/Sujith8257/hostel-ms-sub000/internal/app/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/repositories"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
	pkgAuth "github.com/Sujith8257/hostel-ms-sub000/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextProfileID = "profileID"
	ContextEmail     = "email"
	ContextRole      = "role"
)

// AuthMiddleware handles authentication and authorization
type AuthMiddleware struct {
	jwtService  *pkgAuth.JWTService
	profileRepo *repositories.ProfileRepository
	staffRepo   *repositories.StaffAssignmentRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *pkgAuth.JWTService, profileRepo *repositories.ProfileRepository, staffRepo *repositories.StaffAssignmentRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		profileRepo: profileRepo,
		staffRepo:   staffRepo,
	}
}

// JWTAuth validates the bearer token, verifies the account is still active
// and puts the caller's identity on the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		tokenString, err := pkgAuth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		// Deactivated accounts lose access even with a valid token
		profile, err := m.profileRepo.GetByID(c.Request.Context(), claims.ProfileID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				abortUnauthorized(c, "Account not found")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternalError, "Internal server error", nil))
			return
		}

		if !profile.IsActive {
			abortUnauthorized(c, "Account is disabled")
			return
		}

		c.Set(ContextProfileID, profile.ID)
		c.Set(ContextEmail, profile.Email)
		c.Set(ContextRole, profile.Role)

		c.Next()
	}
}

// RequirePermission gates a route on the permission table. JWTAuth must run
// first.
func (m *AuthMiddleware) RequirePermission(perm appAuth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortUnauthorized(c, "Authentication required")
			return
		}

		roleType, ok := role.(models.RoleType)
		if !ok || !appAuth.Allowed(roleType, perm) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrorCodeForbidden, "You don't have permission for this operation", nil))
			return
		}

		c.Next()
	}
}

// RequireBuildingAccess checks that a non-admin staff caller has an active
// assignment for the building named in the building_id query parameter.
// Admins and hostel directors see every building.
func (m *AuthMiddleware) RequireBuildingAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		roleType, ok := role.(models.RoleType)
		if ok && (roleType == models.RoleAdmin || roleType == models.RoleHostelDirector) {
			c.Next()
			return
		}

		buildingParam := c.Query("building_id")
		if buildingParam == "" {
			c.Next()
			return
		}

		buildingID, err := uuid.Parse(buildingParam)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrorCodeValidation, "Invalid building ID", nil))
			return
		}

		profileID := MustGetProfileID(c)
		allowed, err := m.staffRepo.HasBuildingAccess(c.Request.Context(), profileID, buildingID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternalError, "Internal server error", nil))
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrorCodeForbidden, "You are not assigned to this building", nil))
			return
		}

		c.Next()
	}
}

// MustGetProfileID returns the authenticated caller's profile ID. Only safe
// behind JWTAuth.
func MustGetProfileID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ContextProfileID)
	profileID, _ := id.(uuid.UUID)
	return profileID
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrorCodeUnauthorized, message, nil))
}
