package middleware

import (
	"errors"
	"strings"

	"github.com/emmyxjay/contentFlow-New/internal/auth"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	LocalUserID      = "user_id"
	LocalWorkspaceID = "workspace_id"
	LocalRole        = "role"
)

// RequireAuth verifies the bearer token and stores the caller's user,
// workspace and role in the request locals.
func RequireAuth(tm *auth.TokenManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "missing authorization")
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := tm.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Debug("jwt rejected", zap.String("path", c.Path()), zap.Error(err))
			if errors.Is(err, auth.ErrTokenExpired) {
				return utils.JSONError(c, fiber.StatusUnauthorized, "token expired")
			}
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalWorkspaceID, claims.WorkspaceID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserID).(string)
	return v
}

func WorkspaceID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalWorkspaceID).(string)
	return v
}
