package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-gateway/internal/domain"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

// RequireRole ensures the authenticated caller holds the exact role. The
// role claim is matched exhaustively against the closed enumeration; an
// unknown role claim never passes.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		switch claims.Role {
		case domain.RoleVisitor, domain.RoleEditor, domain.RoleAdmin:
			if claims.Role != required {
				return apperrors.NewForbidden("insufficient role")
			}
		default:
			return apperrors.NewForbidden("unknown role")
		}
		return c.Next()
	}
}
