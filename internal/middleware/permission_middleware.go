package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/usecase"
)

// Permission mengecek gabungan permission dari semua role user. Hasilnya di-cache oleh PermissionService.
func Permission(perms *usecase.PermissionService, requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: User tidak dikenali"})
		}

		allowed, err := perms.Allowed(c.UserContext(), userID, requiredPermission)
		if err != nil {
			log.Printf("ERROR cek permission %s user %d: %v", requiredPermission, userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memvalidasi permission"})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Anda tidak memiliki izin " + requiredPermission})
		}

		return c.Next()
	}
}

// AdminPermission versi panel dari Permission. Dipasang setelah RequireAdminSession.
// Admin yang akunnya sudah dinonaktifkan atau dihapus dikembalikan ke halaman login.
func AdminPermission(perms *usecase.PermissionService, requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := perms.Allowed(c.UserContext(), AdminID(c), requiredPermission)
		if err != nil {
			if appErr, ok := apperror.As(err); ok && appErr.Code == fiber.StatusUnauthorized {
				return c.Redirect("/admin/login")
			}
			log.Printf("ERROR cek permission panel %s admin %d: %v", requiredPermission, AdminID(c), err)
			return c.Status(fiber.StatusInternalServerError).SendString("Gagal memvalidasi permission")
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).SendString("Akses ditolak: Anda tidak memiliki izin " + requiredPermission)
		}
		return c.Next()
	}
}
