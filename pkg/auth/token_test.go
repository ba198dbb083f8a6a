package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/pkg/config"
	"github.com/lumenfoto/studio-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "studio", ExpirationMinutes: 30}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	identity := Identity{
		UserID: uuid.New(),
		Email:  " ana@example.com ",
		Name:   "Ana Souza",
		CPF:    "123.456.789-00",
		Role:   enums.SystemRoleClient,
	}

	token, err := MintAccessToken(cfg, now, identity)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != identity.UserID {
		t.Fatalf("expected user_id %s, got %s", identity.UserID, claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Fatalf("expected trimmed email, got %q", claims.Email)
	}
	if claims.CPF != identity.CPF || claims.Name != identity.Name {
		t.Fatalf("profile fields not preserved: %+v", claims.Identity)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if claims.IsAdmin() {
		t.Fatal("client identity should not be admin")
	}
}

func TestMintDefaultsRoleToClient(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), Identity{UserID: uuid.New(), Email: "a@b.c"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.SystemRoleClient {
		t.Fatalf("expected client role, got %q", claims.Role)
	}
}

func TestParseRejectsWrongSecretAndExpiredTokens(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), Identity{UserID: uuid.New(), Email: "a@b.c"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	wrong := cfg
	wrong.Secret = "other"
	if _, err := ParseAccessToken(wrong, token); err == nil {
		t.Fatal("expected signature error")
	}

	expired, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), Identity{UserID: uuid.New(), Email: "a@b.c"})
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}
	if _, err := ParseAccessToken(cfg, expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected expired token to be rejected with ErrTokenExpired, got %v", err)
	}
}

func TestMintValidatesConfig(t *testing.T) {
	if _, err := MintAccessToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 1}, time.Now(), Identity{}); err == nil {
		t.Fatal("expected missing secret error")
	}
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), Identity{Role: "owner"}); err == nil {
		t.Fatal("expected invalid role error")
	}
}

func TestParseAllowsClockSkewWithinLeeway(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpirationMinutes = 1
	cfg.Leeway = 2 * time.Minute

	token, err := MintAccessToken(cfg, time.Now().Add(-90*time.Second), Identity{UserID: uuid.New(), Email: "a@b.c"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err != nil {
		t.Fatalf("expected token within leeway to parse, got %v", err)
	}
}

func TestParseDefaultsMissingRoleToClient(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), Identity{UserID: uuid.New(), Email: "a@b.c"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != enums.SystemRoleClient {
		t.Fatalf("expected client role, got %q", claims.Role)
	}
}
