package middleware

import (
	"strings"

	"portfolio-api/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxEmailKey = "admin_email"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware gates admin routes behind a bearer token. An expired token is
// rejected exactly like an invalid one; no distinct error is surfaced.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", "", nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", "", err)
		}

		c.Locals(CtxEmailKey, claims.Email)
		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
