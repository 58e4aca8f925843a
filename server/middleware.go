package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	punchlog "github.com/punchlog/go-punchlog"
)

// ClaimsKey is the locals key the auth middleware stores claims under.
const ClaimsKey = "claims"

// GetClaims retrieves the validated claims stashed by Protected.
func GetClaims(c *fiber.Ctx) (*punchlog.TokenClaims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*punchlog.TokenClaims)
	return claims, ok
}

// GetUserID returns the authenticated account id from the request.
func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Protected returns middleware that requires a valid bearer token.
// Claims end up in c.Locals under ClaimsKey.
func Protected(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// RequireRole returns middleware that rejects requests whose claims do
// not carry the exact role. It assumes Protected ran earlier in the
// chain.
func RequireRole(role punchlog.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if claims.UserRole != string(role) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
