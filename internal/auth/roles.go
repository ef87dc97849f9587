package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/domain"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// RequireRole gates a page route to the allowed roles. Authorization
// failures redirect to login just like authentication failures; the
// storefront has no separate forbidden page.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := roleSet(allowed)
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAPIRole gates a REST route to the allowed roles, returning 403 on
// insufficient permission, distinct from the 401 authentication failure.
func RequireAPIRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := roleSet(allowed)
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("access token required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}

func roleSet(roles []domain.Role) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}
