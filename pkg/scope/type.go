package scope

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenExpirationDuration is the default expiration time for JWT tokens (1 week)
	TokenExpirationDuration = time.Hour * 24 * 7
)

// Payload represents the JWT token claims.
type Payload struct {
	jwt.RegisteredClaims
	UserID   string `json:"sub"`      // Subject (user ID)
	Username string `json:"username"` // Username
	Role     string `json:"role"`     // Role, e.g. "admin" for activity overrides
}

type implManager struct {
	secretKey string
}

// PayloadCtxKey keys the verified payload in a request context.
type PayloadCtxKey struct{}
