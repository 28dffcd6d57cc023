package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/api/metrics"
	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// PrincipalKey is the echo context key the resolved principal is stored under.
const PrincipalKey = "principal"

// RequireAuth resolves the request's principal and injects it into the echo
// context. The resolver reloads the user record, so a token whose user was
// deleted is rejected here with 401, not served stale.
func RequireAuth(resolver ports.PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")

			principal, err := resolver.Resolve(c.Request().Context(), header)
			if err != nil {
				metrics.AuthRequestsTotal.WithLabelValues(authResult(err)).Inc()
				switch {
				case errors.Is(err, domain.ErrMissingAuthHeader):
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
				case errors.Is(err, domain.ErrInvalidToken):
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				case errors.Is(err, domain.ErrPrincipalNotFound):
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown principal")
				}
				return err
			}

			metrics.AuthRequestsTotal.WithLabelValues("ok").Inc()
			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

func authResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingAuthHeader):
		return "missing_header"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return "principal_not_found"
	default:
		return "error"
	}
}
