package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/gesapp/ges-backend/internal/app/models"
)

func testService(accessExp, refreshExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     "test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:          42,
		Role:        models.RoleTeacher,
		IsSuperuser: true,
	}
}

func TestGenerateTokenPair_ClaimsRoundTrip(t *testing.T) {
	svc := testService(time.Hour, 24*time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected non-empty tokens")
	}
	if expiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Fatalf("expected refreshExpiresIn 86400, got %d", refreshExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != models.RoleTeacher {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if !claims.IsSuperuser {
		t.Fatalf("expected superuser claim")
	}
	if claims.TokenUse != TokenUseAccess {
		t.Fatalf("unexpected token use: %s", claims.TokenUse)
	}
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := testService(time.Hour, 24*time.Hour)

	_, refresh, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, ErrWrongTokenUse) {
		t.Fatalf("expected ErrWrongTokenUse, got %v", err)
	}
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := testService(time.Hour, 24*time.Hour)

	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, ErrWrongTokenUse) {
		t.Fatalf("expected ErrWrongTokenUse, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testService(-time.Minute, 24*time.Hour)

	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	if _, err := svc.ValidateAccessToken(access); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testService(time.Hour, 24*time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:       "other-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	if _, err := other.ValidateAccessToken(access); err == nil {
		t.Fatalf("expected error for token signed with a different secret")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken returned error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("unexpected token: %s", token)
	}

	if _, err := ExtractBearerToken("abc.def.ghi"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat without prefix, got %v", err)
	}
	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for empty header, got %v", err)
	}
}
