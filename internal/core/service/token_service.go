package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// TokenTTL is the fixed token lifetime. There is no refresh mechanism; the
// short lifetime is the only time-based recovery after credential changes.
const TokenTTL = time.Hour

// TokenService signs and verifies HS256 tokens. The secret, issuer and
// audience come from process configuration, loaded once at startup and
// injected here — never read as ambient global state.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewTokenService(secret, issuer, audience string) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

// tokenData is the identity payload nested under the "data" claim.
type tokenData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type tokenClaims struct {
	Data tokenData `json:"data"`
	jwt.RegisteredClaims
}

// Issue produces a signed token carrying iat, exp (iat + 1h), iss, aud and
// the identity payload.
func (s *TokenService) Issue(claims ports.TokenClaims) (string, error) {
	issuedAt := s.now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Data: tokenData{
			ID:       claims.ID,
			Username: claims.Username,
			Role:     string(claims.Role),
		},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
		},
	})
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded claims.
// Failures map onto exactly one domain error; expiry takes precedence over
// every other validation failure.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	parsed := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, parsed, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return nil, s.classifyTokenError(token, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenMalformed
	}

	role, ok := domain.ParseRole(parsed.Data.Role)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	return &ports.TokenClaims{
		ID:       parsed.Data.ID,
		Username: parsed.Data.Username,
		Role:     role,
	}, nil
}

func (s *TokenService) classifyTokenError(token string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// Signature verification short-circuits before claims validation,
		// so an expired token with a bad signature surfaces here. Expiry
		// still takes precedence: read exp without verifying.
		if s.pastExpiry(token) {
			return domain.ErrTokenExpired
		}
		return domain.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return domain.ErrTokenIssuerMismatch
	default:
		return domain.ErrTokenMalformed
	}
}

// pastExpiry reports whether the token carries an exp claim in the past,
// read without signature verification. Only consulted to pick the error
// kind; an unverified claim never admits a token.
func (s *TokenService) pastExpiry(token string) bool {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && s.now().After(claims.ExpiresAt.Time)
}
