package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/token"
	"sdm-yayasan-backend/internal/usecase"
)

const (
	LocalsClaims = "claims"
	LocalsUserID = "user_id"
	LocalsEmail  = "email"
	LocalsRoles  = "roles"
)

// Auth memverifikasi access token dari header Authorization: Bearer <token>.
// Role diambil ulang dari database lewat PermissionService, bukan dari claims.
func Auth(tokens *token.Manager, perms *usecase.PermissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Ambil token dari Header Authorization
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak ditemukan"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Format token tidak valid"})
		}

		// 2. Parse dan Validasi Token
		claims, err := tokens.VerifyAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid atau kadaluwarsa"})
		}

		// 3. Pastikan akun masih aktif dan ambil role terbaru
		akses, err := perms.Akses(c.UserContext(), claims.UserID)
		if err != nil {
			if appErr, ok := apperror.As(err); ok && appErr.Code == fiber.StatusUnauthorized {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": appErr.Message})
			}
			log.Printf("ERROR cek akses user %d: %v", claims.UserID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memvalidasi akun"})
		}

		// 4. Simpan data user ke Context agar bisa dipakai di Handler
		c.Locals(LocalsClaims, claims)
		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsEmail, claims.Email)
		c.Locals(LocalsRoles, akses.Roles)

		return c.Next()
	}
}

// UserID mengembalikan id user yang login, 0 bila route tidak melewati Auth.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalsUserID).(uint)
	return id
}

func Roles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalsRoles).([]string)
	return roles
}

func Claims(c *fiber.Ctx) (*token.JWTClaims, bool) {
	claims, ok := c.Locals(LocalsClaims).(*token.JWTClaims)
	return claims, ok
}
