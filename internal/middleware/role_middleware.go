package middleware

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/model"
)

// Role meloloskan user yang memiliki salah satu role. super_admin selalu lolos.
func Role(allowedRoles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowedRoles)+1)
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	allowed[model.RoleSuperAdmin] = struct{}{}

	return func(c *fiber.Ctx) error {
		// Ambil role user dari context (diset di Auth middleware)
		roles := Roles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Role tidak valid"})
		}

		for _, r := range roles {
			if _, ok := allowed[r]; ok {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Role Anda tidak diizinkan"})
	}
}
