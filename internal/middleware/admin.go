package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/service"
)

const (
	AdminKey   = "is_admin"
	AdminIDKey = "admin_id"
)

// AdminAuth middleware checks if the authenticated user is an admin
func AdminAuth(adminSvc *service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		isAdmin, err := adminSvc.IsAdmin(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to check admin status",
			})
		}

		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}

		c.Locals(AdminKey, true)
		c.Locals(AdminIDKey, userID)

		return c.Next()
	}
}

// GetAdminID returns the admin user ID from context
func GetAdminID(c *fiber.Ctx) string {
	adminID, ok := c.Locals(AdminIDKey).(string)
	if !ok {
		return ""
	}
	return adminID
}
