package auth

import (
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Roles  []enums.UserRole
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID        `json:"user_id"`
	Roles  []enums.UserRole `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the provided role.
func (c *AccessTokenClaims) HasRole(role enums.UserRole) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
