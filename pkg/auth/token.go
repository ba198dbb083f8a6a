package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/pkg/config"
	"github.com/lumenfoto/studio-backend/pkg/enums"
)

var (
	signingMethod = jwt.SigningMethodHS256

	// ErrTokenExpired lets callers tell a stale session apart from a forged token.
	ErrTokenExpired = errors.New("access token expired")
)

func checkConfig(cfg config.JWTConfig, minting bool) error {
	switch {
	case cfg.Secret == "":
		return errors.New("jwt secret is required")
	case minting && cfg.Issuer == "":
		return errors.New("jwt issuer is required")
	case minting && cfg.ExpirationMinutes <= 0:
		return errors.New("jwt expiration minutes must be positive")
	}
	return nil
}

// MintAccessToken signs a token for identity. The identity provider issues tokens
// in production; tooling and tests mint their own with the shared secret.
func MintAccessToken(cfg config.JWTConfig, now time.Time, identity Identity) (string, error) {
	if err := checkConfig(cfg, true); err != nil {
		return "", err
	}
	if identity.Role == "" {
		identity.Role = enums.SystemRoleClient
	}
	if !identity.Role.IsValid() {
		return "", fmt.Errorf("invalid system role %q", identity.Role)
	}
	identity.Email = strings.TrimSpace(identity.Email)

	ttl := time.Duration(cfg.ExpirationMinutes) * time.Minute
	claims := AccessTokenClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    cfg.Issuer,
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature, issuer and expiry (allowing cfg.Leeway of
// clock skew) and returns the typed claims.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*AccessTokenClaims, error) {
	if err := checkConfig(cfg, false); err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case err != nil:
		return nil, err
	}

	if claims.Role == "" {
		claims.Role = enums.SystemRoleClient
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("invalid system role %q", claims.Role)
	}
	return claims, nil
}
