package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// PrincipalResolver turns a raw Authorization header value into the
// authenticated principal. Fails with domain.ErrMissingAuthHeader,
// domain.ErrInvalidToken or domain.ErrPrincipalNotFound.
type PrincipalResolver interface {
	Resolve(ctx context.Context, authorizationHeader string) (*domain.Principal, error)
}
