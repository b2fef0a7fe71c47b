package middleware

import (
	"strings"

	deliverycontext "helpmate/internal/delivery/context"
	"helpmate/internal/delivery/http/response"
	"helpmate/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and installs the session into the
// request context. Handlers downstream read the session instead of parsing
// the token again.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		session := deliverycontext.Session{UserID: claims.UserID}
		ctx := deliverycontext.WithSession(c.Request().Context(), session)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Set(string(deliverycontext.KeySession), session)

		return next(c)
	}
}
