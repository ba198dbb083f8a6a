package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/pkg/enums"
)

// Identity is the authenticated client profile carried by an access token.
type Identity struct {
	UserID  uuid.UUID        `json:"user_id"`
	Email   string           `json:"email"`
	Name    string           `json:"name,omitempty"`
	CPF     string           `json:"cpf,omitempty"`
	Phone   string           `json:"phone,omitempty"`
	Address string           `json:"address,omitempty"`
	Role    enums.SystemRole `json:"role"`
}

// IsAdmin reports whether the identity holds the admin system role.
func (i Identity) IsAdmin() bool {
	return i.Role == enums.SystemRoleAdmin
}

// AccessTokenClaims represents the typed JWT presented by clients.
type AccessTokenClaims struct {
	Identity
	jwt.RegisteredClaims
}
