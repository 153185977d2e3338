package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()

	tok, err := svc.GenerateAccessToken(uid, "jane@x.com", "recruiter", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != uid || claims.Email != "jane@x.com" || claims.Role != "recruiter" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if !claims.Approved {
		t.Fatalf("approved claim lost in round trip")
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token reported as refresh")
	}
}

func TestAccessToken_UnapprovedClaim(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateAccessToken(uuid.New(), "jane@x.com", "recruiter", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Approved {
		t.Fatalf("unapproved recruiter must not carry an approved claim")
	}
}

func TestRefreshTokenCarriesNoIdentityClaims(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()

	tok, err := svc.GenerateRefreshToken(uid)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("refresh token not recognized")
	}
	if claims.UserID != uid {
		t.Fatalf("user id mismatch: %v", claims.UserID)
	}
	if claims.Email != "" || claims.Role != "" {
		t.Fatalf("refresh token must not carry email or role: %+v", claims)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateAccessToken(uuid.New(), "jane@x.com", "candidate", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewHMACService("different-access", "different-refresh", 15*time.Minute, time.Hour)

	tok, err := svc.GenerateAccessToken(uuid.New(), "", "", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}
