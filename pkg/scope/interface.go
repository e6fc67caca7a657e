package scope

// Manager defines the interface for JWT token management.
// Implementations are safe for concurrent use.
type Manager interface {
	// Verify verifies a JWT token and returns the payload if valid.
	Verify(token string) (Payload, error)
	// CreateToken creates a new JWT token with the provided payload.
	CreateToken(payload Payload) (string, error)
}

// New creates a new JWT manager with the provided secret key.
func New(secretKey string) Manager {
	if secretKey == "" {
		panic("JWT secret key cannot be empty")
	}
	return &implManager{
		secretKey: secretKey,
	}
}
