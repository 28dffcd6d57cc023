package ports

import "github.com/staffdir/directory-api/internal/core/domain"

// TokenClaims is the identity payload embedded inside a signed token.
type TokenClaims struct {
	ID       int64
	Username string
	Role     domain.Role
}

// TokenService issues and verifies signed, time-bound tokens. Verification is
// CPU-bound only; there is no revocation list and no refresh mechanism —
// tokens stay valid until natural expiry.
type TokenService interface {
	Issue(claims TokenClaims) (string, error)
	// Verify fails with one of the domain token errors: ErrTokenMalformed,
	// ErrTokenExpired, ErrTokenSignatureInvalid or ErrTokenIssuerMismatch.
	Verify(token string) (*TokenClaims, error)
}
