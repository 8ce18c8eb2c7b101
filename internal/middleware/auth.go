package middleware

import (
	"net/http"
	"strings"

	"github.com/HassanAtaya/digitalmenu/internal/principal"
	"github.com/HassanAtaya/digitalmenu/pkg/jwtutil"
	"github.com/HassanAtaya/digitalmenu/pkg/logger"
	"github.com/HassanAtaya/digitalmenu/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the bearer token and stores the reconstructed
// principal in the request context.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.Verify(parts[1])
		if err != nil {
			log.Warn("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		p, err := principal.FromClaims(claims)
		if err != nil {
			log.Warn("Token claims do not form a valid principal", zap.Error(err))
			prometheus.RecordAuthError("invalid_claims")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set("principal", p)
		return next(c)
	}
}

// RequireAdmin rejects non-admin principals. It must run after
// AuthMiddleware.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		p, ok := GetPrincipal(c)
		if !ok {
			log.Error("Missing principal in context")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		if !principal.IsAdmin(p) {
			log.Warn("Non-admin principal on admin route")
			prometheus.RecordAuthError("admin_required")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
		}
		return next(c)
	}
}

// GetPrincipal retrieves the authenticated principal from the context
func GetPrincipal(c echo.Context) (principal.Principal, bool) {
	p, ok := c.Get("principal").(principal.Principal)
	return p, ok
}
