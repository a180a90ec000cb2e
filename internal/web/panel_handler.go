package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/usecase"
)

//go:embed templates
var templateFS embed.FS

const (
	flashSuccessKey = "flash_success"
	flashErrorKey   = "flash_error"
)

// PanelHandler melayani halaman panel admin berbasis session cookie.
type PanelHandler struct {
	templates map[string]*template.Template
	store     *session.Store
	auth      *usecase.AuthUsecase
	pegawai   *usecase.PegawaiUsecase
	absensi   *usecase.AbsensiUsecase
	cuti      *usecase.CutiUsecase
	laporan   *usecase.LaporanUsecase
}

// PageData adalah data yang dikirim ke setiap template.
type PageData struct {
	Title     string
	Active    string
	AdminNama string
	Error     string
	Success   string
	Email     string

	Dashboard  *usecase.Dashboard
	Pegawai    []model.User
	Absensi    []model.Absensi
	Cuti       []model.PengajuanCuti
	Tanggal    string
	Search     string
	Trashed    string
	Page       int
	TotalPages int
	Total      int64
}

func NewPanelHandler(
	store *session.Store,
	auth *usecase.AuthUsecase,
	pegawai *usecase.PegawaiUsecase,
	absensi *usecase.AbsensiUsecase,
	cuti *usecase.CutiUsecase,
	laporan *usecase.LaporanUsecase,
) *PanelHandler {
	funcMap := template.FuncMap{
		"add":      func(a, b int) int { return a + b },
		"subtract": func(a, b int) int { return a - b },
		"jam": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return t.Format("15:04")
		},
		"label": func(status string) string {
			return strings.ReplaceAll(status, "_", " ")
		},
	}

	// setiap halaman di-parse bersama layout base
	pages := map[string]string{
		"login":     "templates/admin/login.html",
		"dashboard": "templates/admin/dashboard.html",
		"pegawai":   "templates/admin/pegawai.html",
		"absensi":   "templates/admin/absensi.html",
		"cuti":      "templates/admin/cuti.html",
	}
	templates := make(map[string]*template.Template, len(pages))
	for name, page := range pages {
		templates[name] = template.Must(template.New("base.html").Funcs(funcMap).
			ParseFS(templateFS, "templates/layouts/base.html", page))
	}

	return &PanelHandler{
		templates: templates,
		store:     store,
		auth:      auth,
		pegawai:   pegawai,
		absensi:   absensi,
		cuti:      cuti,
		laporan:   laporan,
	}
}

func (h *PanelHandler) render(c *fiber.Ctx, name string, data PageData) error {
	t, ok := h.templates[name]
	if !ok {
		log.Printf("Template tidak ditemukan: %s", name)
		return c.Status(fiber.StatusInternalServerError).SendString("Template tidak ditemukan")
	}
	if data.AdminNama == "" {
		data.AdminNama = middleware.AdminNama(c)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("Template error (%s): %v", name, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Gagal merender halaman")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// flash menyimpan pesan satu kali tampil lalu mengarahkan ke halaman tujuan.
func (h *PanelHandler) flash(c *fiber.Ctx, to string, err error, success string) error {
	sess, sessErr := h.store.Get(c)
	if sessErr == nil {
		if err != nil {
			sess.Set(flashErrorKey, pesanError(err))
		} else {
			sess.Set(flashSuccessKey, success)
		}
		if saveErr := sess.Save(); saveErr != nil {
			log.Printf("Gagal menyimpan flash: %v", saveErr)
		}
	}
	return c.Redirect(to)
}

// ambilFlash membaca lalu menghapus pesan flash dari session.
func (h *PanelHandler) ambilFlash(c *fiber.Ctx, data *PageData) {
	sess, err := h.store.Get(c)
	if err != nil {
		return
	}
	if v, ok := sess.Get(flashSuccessKey).(string); ok {
		data.Success = v
	}
	if v, ok := sess.Get(flashErrorKey).(string); ok {
		data.Error = v
	}
	if data.Success == "" && data.Error == "" {
		return
	}
	sess.Delete(flashSuccessKey)
	sess.Delete(flashErrorKey)
	_ = sess.Save()
}

// pesanError menggabungkan pesan apperror dan error per field menjadi satu kalimat.
func pesanError(err error) string {
	appErr, ok := apperror.As(err)
	if !ok {
		log.Printf("ERROR panel: %+v", err)
		return "Terjadi kesalahan pada server"
	}
	if len(appErr.Fields) == 0 {
		return appErr.Message
	}
	keys := make([]string, 0, len(appErr.Fields))
	for k := range appErr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, appErr.Fields[k])
	}
	return fmt.Sprintf("%s: %s", appErr.Message, strings.Join(parts, "; "))
}

// ShowLogin - GET /admin/login
func (h *PanelHandler) ShowLogin(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil && sess.Get(middleware.SessionAdminIDKey) != nil {
		return c.Redirect("/admin")
	}
	data := PageData{Title: "Login", Active: "login"}
	h.ambilFlash(c, &data)
	return h.render(c, "login", data)
}

// Login - POST /admin/login
func (h *PanelHandler) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	user, err := h.auth.AdminLogin(c.UserContext(), email, password)
	if err != nil {
		return h.render(c, "login", PageData{
			Title:  "Login",
			Active: "login",
			Email:  email,
			Error:  pesanError(err),
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return h.render(c, "login", PageData{Title: "Login", Active: "login", Email: email, Error: "Gagal membuat session"})
	}
	// cegah session fixation
	if err := sess.Regenerate(); err != nil {
		return h.render(c, "login", PageData{Title: "Login", Active: "login", Email: email, Error: "Gagal membuat session"})
	}
	sess.Set(middleware.SessionAdminIDKey, user.ID)
	sess.Set(middleware.SessionAdminNamaKey, user.Nama)
	if err := sess.Save(); err != nil {
		return h.render(c, "login", PageData{Title: "Login", Active: "login", Email: email, Error: "Gagal menyimpan session"})
	}

	return c.Redirect("/admin")
}

// Logout - POST /admin/logout
func (h *PanelHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/admin/login")
}

// Dashboard - GET /admin
func (h *PanelHandler) Dashboard(c *fiber.Ctx) error {
	data := PageData{Title: "Dashboard", Active: "dashboard"}
	h.ambilFlash(c, &data)

	stats, err := h.laporan.Dashboard()
	if err != nil {
		data.Error = pesanError(err)
	}
	data.Dashboard = stats
	return h.render(c, "dashboard", data)
}
