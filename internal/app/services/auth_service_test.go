package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	pkgAuth "github.com/Sujith8257/hostel-ms-sub000/internal/pkg/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
)

type fakeProfileStore struct {
	byID    map[uuid.UUID]*models.Profile
	byEmail map[string]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		byID:    make(map[uuid.UUID]*models.Profile),
		byEmail: make(map[string]*models.Profile),
	}
}

func (f *fakeProfileStore) Create(_ context.Context, profile *models.Profile) error {
	if _, ok := f.byEmail[profile.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	f.byID[profile.ID] = profile
	f.byEmail[profile.Email] = profile
	return nil
}

func (f *fakeProfileStore) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	p, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) Update(_ context.Context, profile *models.Profile) error {
	if _, ok := f.byID[profile.ID]; !ok {
		return apperrors.ErrProfileNotFound
	}
	f.byID[profile.ID] = profile
	f.byEmail[profile.Email] = profile
	return nil
}

func (f *fakeProfileStore) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	p, ok := f.byID[id]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	now := time.Now()
	p.LastLoginAt = &now
	return nil
}

type fakeTokenStore struct {
	tokens  map[string]uuid.UUID
	revoked map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		tokens:  make(map[string]uuid.UUID),
		revoked: make(map[string]bool),
	}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, profileID uuid.UUID, _ time.Time) error {
	f.tokens[token] = profileID
	return nil
}

func (f *fakeTokenStore) GetTokenProfile(_ context.Context, token string) (uuid.UUID, error) {
	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, apperrors.ErrTokenNotFound
	}
	if f.revoked[token] {
		return uuid.Nil, apperrors.ErrTokenRevoked
	}
	return id, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	if _, ok := f.tokens[token]; !ok {
		return apperrors.ErrTokenNotFound
	}
	f.revoked[token] = true
	return nil
}

func (f *fakeTokenStore) RevokeAllProfileTokens(_ context.Context, profileID uuid.UUID) error {
	for token, id := range f.tokens {
		if id == profileID {
			f.revoked[token] = true
		}
	}
	return nil
}

func newTestJWTService() *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hostel-ms-test",
	})
}

func newAuthServiceFixture() (AuthService, *fakeProfileStore, *fakeTokenStore) {
	profiles := newFakeProfileStore()
	tokens := newFakeTokenStore()
	svc := NewAuthService(profiles, tokens, newTestJWTService(), zerolog.Nop())
	return svc, profiles, tokens
}

func registerAccount(t *testing.T, svc AuthService, email, password string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Email:    email,
		Password: password,
		FullName: "Test User",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	return resp
}

func TestSignupAssignsStudentRole(t *testing.T) {
	svc, profiles, _ := newAuthServiceFixture()

	resp := registerAccount(t, svc, "Student@Hostel.Edu", "password123")

	if resp.Profile.Role != string(models.RoleStudent) {
		t.Errorf("profile role = %q, want %q", resp.Profile.Role, models.RoleStudent)
	}
	// Email is normalized to lower case before storage
	if _, ok := profiles.byEmail["student@hostel.edu"]; !ok {
		t.Error("profile not stored under lowercased email")
	}
	if resp.Token.AccessToken == "" || resp.Token.RefreshToken == "" {
		t.Error("signup did not issue a token pair")
	}
}

func TestSignupHashesPassword(t *testing.T) {
	svc, profiles, _ := newAuthServiceFixture()

	registerAccount(t, svc, "hash@hostel.edu", "password123")

	stored := profiles.byEmail["hash@hostel.edu"]
	if stored.Password == "password123" {
		t.Fatal("password stored in plain text")
	}
	if !pkgAuth.CheckPassword(stored.Password, "password123") {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()
	registerAccount(t, svc, "login@hostel.edu", "password123")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "LOGIN@hostel.edu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token.TokenType != "Bearer" {
		t.Errorf("token type = %q, want Bearer", resp.Token.TokenType)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()
	registerAccount(t, svc, "wrongpw@hostel.edu", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "wrongpw@hostel.edu",
		Password: "not-the-password",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmailDoesNotLeakExistence(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@hostel.edu",
		Password: "whatever123",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, profiles, _ := newAuthServiceFixture()
	registerAccount(t, svc, "disabled@hostel.edu", "password123")
	profiles.byEmail["disabled@hostel.edu"].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "disabled@hostel.edu",
		Password: "password123",
	})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("Login error = %v, want ErrAccountDisabled", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, tokens := newAuthServiceFixture()
	resp := registerAccount(t, svc, "refresh@hostel.edu", "password123")
	oldToken := resp.Token.RefreshToken

	refreshed, err := svc.RefreshToken(context.Background(), oldToken)
	if err != nil {
		t.Fatalf("RefreshToken returned error: %v", err)
	}
	if refreshed.RefreshToken == oldToken {
		t.Error("refresh token was not rotated")
	}
	if !tokens.revoked[oldToken] {
		t.Error("old refresh token was not revoked")
	}

	// The revoked token must not be usable again
	if _, err := svc.RefreshToken(context.Background(), oldToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("reused token error = %v, want ErrTokenRevoked", err)
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.RefreshToken(context.Background(), uuid.New().String())
	if !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("RefreshToken error = %v, want ErrTokenNotFound", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, tokens := newAuthServiceFixture()
	resp := registerAccount(t, svc, "logout@hostel.edu", "password123")

	if err := svc.Logout(context.Background(), resp.Token.RefreshToken); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if !tokens.revoked[resp.Token.RefreshToken] {
		t.Error("refresh token was not revoked on logout")
	}

	// Logging out with an unknown token is not an error
	if err := svc.Logout(context.Background(), "unknown-token"); err != nil {
		t.Errorf("Logout with unknown token returned error: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()
	resp := registerAccount(t, svc, "update@hostel.edu", "password123")

	newName := "  Renamed User  "
	updated, err := svc.UpdateProfile(context.Background(), resp.Profile.ID, &dto.UpdateProfileRequest{FullName: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.FullName != strings.TrimSpace(newName) {
		t.Errorf("full name = %q, want trimmed %q", updated.FullName, strings.TrimSpace(newName))
	}
}
