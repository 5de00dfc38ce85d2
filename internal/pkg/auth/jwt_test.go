package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "unit-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hostel-ms-test",
	})
}

func testProfile() *models.Profile {
	return &models.Profile{
		ID:    uuid.New(),
		Email: "warden@hostel.edu",
		Role:  models.RoleWarden,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService(time.Hour)
	profile := testProfile()

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(profile)
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("GenerateTokenPair returned empty tokens")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.ProfileID != profile.ID {
		t.Errorf("claims profile ID = %s, want %s", claims.ProfileID, profile.ID)
	}
	if claims.Email != profile.Email {
		t.Errorf("claims email = %q, want %q", claims.Email, profile.Email)
	}
	if claims.Role != string(models.RoleWarden) {
		t.Errorf("claims role = %q, want %q", claims.Role, models.RoleWarden)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testService(-time.Minute)
	accessToken, _, _, _, err := svc.GenerateTokenPair(testProfile())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	_, err = svc.ValidateToken(accessToken)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("ValidateToken error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := testService(time.Hour)
	accessToken, _, _, _, err := svc.GenerateTokenPair(testProfile())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hostel-ms-test",
	})

	if _, err := other.ValidateToken(accessToken); err == nil {
		t.Fatal("ValidateToken accepted a token signed with another secret")
	}
}

func TestValidateAndExtractClaimsEmpty(t *testing.T) {
	svc := testService(time.Hour)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ValidateAndExtractClaims error = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"raw token", "abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractBearerToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
