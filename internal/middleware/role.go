package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/models"
	"gorm.io/gorm"
)

// RoleRequired gates a route on the current user's role, looked up from the
// users table rather than trusted from token claims. The UI hides these
// actions too, but this is the check that counts.
func RoleRequired(db *gorm.DB, allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Locals("current_user", &user)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Insufficient permissions",
		})
	}
}

// UserRequired loads the authenticated user into context without gating on
// role, for routes that do their own ownership checks.
func UserRequired(db *gorm.DB) fiber.Handler {
	return RoleRequired(db, models.RoleCitizen, models.RoleModerator, models.RoleAdmin)
}

// AdminRequired allows admins only.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return RoleRequired(db, models.RoleAdmin)
}

// ModeratorRequired allows moderators and admins.
func ModeratorRequired(db *gorm.DB) fiber.Handler {
	return RoleRequired(db, models.RoleModerator, models.RoleAdmin)
}

// CurrentUser returns the user loaded by RoleRequired, if any.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("current_user").(*models.User); ok {
		return u
	}
	return nil
}
