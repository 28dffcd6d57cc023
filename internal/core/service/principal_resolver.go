package service

import (
	"context"
	"errors"
	"strings"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// bearerPrefix is stripped when present, exact case. A header without it is
// treated as the bare token — documented permissiveness carried over from
// the previous system, not an accident.
const bearerPrefix = "Bearer "

// PrincipalResolver turns an Authorization header into a Principal. The
// verified claims only locate the user record; role and company membership
// are always taken from the freshly loaded record, so revoked privileges
// stop working before the token expires.
type PrincipalResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewPrincipalResolver(tokens ports.TokenService, users ports.UserRepository) *PrincipalResolver {
	return &PrincipalResolver{tokens: tokens, users: users}
}

func (r *PrincipalResolver) Resolve(ctx context.Context, authorizationHeader string) (*domain.Principal, error) {
	if authorizationHeader == "" {
		return nil, domain.ErrMissingAuthHeader
	}

	token := strings.TrimPrefix(authorizationHeader, bearerPrefix)
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := r.users.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Token outlived its user.
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}

	return &domain.Principal{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}, nil
}
