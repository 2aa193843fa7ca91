package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

func RequireRole(requiredRole domain.Role) fiber.Handler {
	return RequireAnyRole(requiredRole)
}

func RequireAnyRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := GetIdentity(c)
		if err != nil {
			return err
		}

		for _, role := range roles {
			if identity.HasRole(role) {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

// ActingRole picks the role a caller acts under. A requested role is honored
// only when the caller holds it.
func ActingRole(identity domain.Identity, requested domain.Role) (domain.Role, error) {
	if requested == "" {
		return identity.PrimaryRole(), nil
	}
	if !identity.HasRole(requested) {
		return "", Forbidden("You do not hold the requested role")
	}
	return requested, nil
}
