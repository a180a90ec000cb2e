package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
	"sdm-yayasan-backend/internal/web"
)

// SetupPanelRoutes mendaftarkan halaman panel admin (HTML + session cookie).
func SetupPanelRoutes(app *fiber.App, d *Dependencies) {
	if d.Sessions == nil {
		d.Sessions = middleware.NewAdminSessionStore(d.Config.Session)
	}
	hdl := web.NewPanelHandler(
		d.Sessions,
		usecase.NewAuthUsecase(repository.NewUserRepository(d.DB), d.Tokens, d.Permissions),
		newPegawaiUsecase(d),
		newAbsensiUsecase(d),
		newCutiUsecase(d),
		newLaporanUsecase(d),
	)

	// Public Routes
	app.Get("/admin/login", hdl.ShowLogin)
	app.Post("/admin/login", hdl.Login)

	// Protected Routes, akses panel dicek ulang setiap request
	admin := app.Group("/admin",
		middleware.RequireAdminSession(d.Sessions),
		middleware.AdminPermission(d.Permissions, model.PermAksesPanelAdmin),
	)
	admin.Post("/logout", hdl.Logout)
	admin.Get("/", hdl.Dashboard)

	admin.Get("/pegawai", middleware.AdminPermission(d.Permissions, model.PermKelolaPegawai), hdl.ShowPegawai)
	admin.Post("/pegawai/bulk-delete", middleware.AdminPermission(d.Permissions, model.PermKelolaPegawai), hdl.BulkDeletePegawai)

	admin.Get("/absensi", middleware.AdminPermission(d.Permissions, model.PermKelolaAbsensi), hdl.ShowAbsensi)
	admin.Post("/absensi/bulk-delete", middleware.AdminPermission(d.Permissions, model.PermKelolaAbsensi), hdl.BulkDeleteAbsensi)
	admin.Post("/absensi/:id/restore", middleware.AdminPermission(d.Permissions, model.PermKelolaAbsensi), hdl.RestoreAbsensi)

	// tahap persetujuan dicek per role di usecase
	admin.Get("/cuti", hdl.ShowCuti)
	admin.Post("/cuti/:id/setujui", hdl.SetujuiCuti)
	admin.Post("/cuti/:id/tolak", hdl.TolakCuti)
}
