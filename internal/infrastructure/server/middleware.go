package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/core/internal/adapters/remote"
)

// tokenPassthrough lifts the mobile client's bearer token off the incoming
// request and scopes it into the context, so every backend call made on
// behalf of this request carries the caller's own credentials. Requests
// without a token still proceed; the backend client falls back to its
// configured token source, and the backend itself stays the authority on
// whether the call is allowed.
func (s *Server) tokenPassthrough() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader || token == "" {
				return next(c)
			}

			ctx := remote.WithToken(c.Request().Context(), token)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
