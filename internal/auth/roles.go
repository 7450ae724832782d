package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/domain"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// RequireRoles allows the request only when the identity holds one of the
// roles. With no roles any authenticated identity passes.
func RequireRoles(roles ...domain.RoleName) fiber.Handler {
	allowedSet := make(map[domain.RoleName]struct{}, len(roles))
	for _, role := range roles {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role.Name]; !exists {
			return apperrors.NewForbidden("Forbidden resource")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures an identity was resolved.
func RequireAuthenticated() fiber.Handler {
	return RequireRoles()
}
