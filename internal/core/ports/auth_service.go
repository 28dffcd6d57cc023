package ports

import "context"

// AuthService authenticates credentials and issues session tokens.
type AuthService interface {
	// Login verifies username/password and returns a signed token.
	// Fails with domain.ErrInvalidCredentials or domain.ErrTooManyAttempts.
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginThrottle bounds repeated failed logins per username.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
