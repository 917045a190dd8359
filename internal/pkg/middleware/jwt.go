package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/triptracker/internal/pkg/jwt"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/utils"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextSubject = "subject"
	ContextRole    = "role"
)

// JWTAuthMiddleware checks the bearer token of every request. With an empty
// secret the local surface is open and the middleware lets everything pass.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Secret == "" {
				return next(c)
			}

			tokenString, ok := TokenFromRequest(c.Request())
			if !ok {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			claims, err := jwtpkg.ValidateToken(tokenString, config)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(ContextSubject, claims.Subject)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}

// TokenFromRequest reads a bearer token from the Authorization header, or
// from the token query parameter for websocket upgrades that cannot set
// headers
func TokenFromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, true
	}
	return "", false
}

// RoleFromContext returns the role of an authenticated request
func RoleFromContext(c echo.Context) (models.Role, bool) {
	role, ok := c.Get(ContextRole).(models.Role)
	return role, ok
}
