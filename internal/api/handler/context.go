package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/api/middleware"
	"github.com/staffdir/directory-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the RequireAuth middleware.
// Its presence proves the middleware ran; a miss is a wiring bug surfaced as
// 401 rather than a panic.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if !ok || p == nil {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return *p, nil
}
