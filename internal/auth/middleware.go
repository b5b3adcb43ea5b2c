package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/repository"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Actor *domain.Actor
}

// AuthMiddleware validates bearer tokens and loads the acting Actor.
type AuthMiddleware struct {
	tokens *TokenManager
	actors repository.ActorRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, actors repository.ActorRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, actors: actors}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	actor, err := m.actors.GetByID(c.Context(), claims.ActorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("actor not found")
		}
		return apperrors.MapError(err)
	}
	if !actor.Active {
		return apperrors.NewUnauthorized("account deactivated")
	}

	c.Locals(principalKey, &Principal{Actor: actor})
	return c.Next()
}

// Optional loads a principal when a bearer token is present, but lets
// anonymous callers through. Used by the enterprise-inquiry endpoint.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}
	return m.Handle(c)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// ActorFromContext returns the acting Actor, nil when anonymous.
func ActorFromContext(c *fiber.Ctx) *domain.Actor {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal.Actor
}
