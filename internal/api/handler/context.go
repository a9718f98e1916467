package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordkeep/customer-api/internal/api/middleware"
)

// ctxIdentity extracts the authenticated identity installed by the
// Authenticate middleware. Handlers behind RequireAuth can rely on it
// being present; an empty username means the guard chain was
// misconfigured, which is rejected rather than trusted.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get(middleware.ContextKeyUsername).(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(middleware.ContextKeyRole).(string)
	return username, role, nil
}
