package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func newAbsensiUsecase(d *Dependencies) *usecase.AbsensiUsecase {
	return usecase.NewAbsensiUsecase(
		repository.NewAbsensiRepository(d.DB),
		repository.NewUserRepository(d.DB),
		d.kalender(),
		d.Storage,
		d.Config.Absensi,
		d.location(),
		d.Now,
	)
}

func SetupAbsensiRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewAbsensiHandler(newAbsensiUsecase(d))

	// Grouping route khusus absensi
	api := app.Group("/api/absensi", d.auth())
	api.Post("/check-in", hdl.CheckIn)
	api.Post("/check-out", hdl.CheckOut)
	api.Post("/cek-lokasi", hdl.CekLokasi)
	api.Post("/izin", hdl.Izin)
	api.Get("/hari-ini", hdl.HariIni)
	api.Get("/riwayat", hdl.GetHistory)

	admin := app.Group("/api/admin/absensi", d.auth(), d.permission(model.PermKelolaAbsensi))
	admin.Get("/", hdl.GetAll)
	admin.Post("/", hdl.Create)
	admin.Post("/bulk-delete", hdl.BulkDelete)
	admin.Get("/:id", hdl.GetDetail)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
	admin.Post("/:id/restore", hdl.Restore)
	admin.Delete("/:id/permanen", hdl.ForceDelete)
	admin.Get("/:id/logs", hdl.Logs)
}
