package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recordkeep/customer-api/internal/api/metrics"
	"github.com/recordkeep/customer-api/internal/core/ports"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// Authenticate inspects the Authorization header, verifies the bearer
// token and, when it resolves to a live identity, installs the username
// and role into the request context. It never rejects: a missing header,
// a malformed header, an invalid token or a subject that no longer
// exists all forward the request unauthenticated, and RequireAuth (or a
// stricter route guard) decides whether that is fatal. Keeping rejection
// out of this layer lets public routes share the same chain.
//
// Only request-scoped state is touched; the middleware is safe across
// concurrent requests.
func Authenticate(verifier ports.TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			subject, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				// The subject was valid at issuance but the identity is
				// gone; the token no longer authenticates anyone.
				metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(ContextKeyUsername, user.Username)
			c.Set(ContextKeyRole, user.Role)

			return next(c)
		}
	}
}
