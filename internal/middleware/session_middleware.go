package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"sdm-yayasan-backend/config"
)

const (
	SessionAdminIDKey   = "admin_id"
	SessionAdminNamaKey = "admin_nama"
)

// NewAdminSessionStore membuat session store cookie untuk panel admin.
func NewAdminSessionStore(cfg config.SessionConfig) *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:admin_session",
		Expiration:     cfg.Expiration,
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// RequireAdminSession mengarahkan ke halaman login bila belum ada session admin.
func RequireAdminSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/admin/login")
		}

		adminID, ok := sess.Get(SessionAdminIDKey).(uint)
		if !ok || adminID == 0 {
			return c.Redirect("/admin/login")
		}

		// Simpan di locals untuk digunakan di handler
		c.Locals(SessionAdminIDKey, adminID)
		c.Locals(SessionAdminNamaKey, sess.Get(SessionAdminNamaKey))

		return c.Next()
	}
}

// AdminID mengembalikan id admin dari session yang sudah diverifikasi RequireAdminSession.
func AdminID(c *fiber.Ctx) uint {
	id, _ := c.Locals(SessionAdminIDKey).(uint)
	return id
}

// AdminNama dipakai layout panel untuk menyapa admin yang login.
func AdminNama(c *fiber.Ctx) string {
	nama, _ := c.Locals(SessionAdminNamaKey).(string)
	return nama
}
