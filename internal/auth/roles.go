package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bharatmovers/booking-service/internal/domain"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// RequireRole ensures the principal holds one of the allowed roles. With no
// roles listed, any authenticated actor passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Actor == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Actor.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireElevated ensures the principal is staff or admin.
func RequireElevated() fiber.Handler {
	return RequireRole(domain.RoleStaff, domain.RoleAdmin)
}
