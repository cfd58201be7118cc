package types

import "github.com/google/uuid"

// TokenClaims carries the authenticated principal extracted from a JWT.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}
