package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func newPegawaiUsecase(d *Dependencies) *usecase.PegawaiUsecase {
	return usecase.NewPegawaiUsecase(
		repository.NewUserRepository(d.DB),
		repository.NewRoleRepository(d.DB),
		repository.NewDepartemenRepository(d.DB),
		repository.NewJabatanRepository(d.DB),
		repository.NewTempatKerjaRepository(d.DB),
		d.Permissions,
	)
}

func SetupPegawaiRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewPegawaiHandler(newPegawaiUsecase(d))

	// Admin Routes (Kelola Pegawai)
	admin := app.Group("/api/admin/pegawai", d.auth(), d.permission(model.PermKelolaPegawai))
	admin.Get("/", hdl.GetAll)
	admin.Get("/export", hdl.Export)
	admin.Post("/bulk-delete", hdl.BulkDelete)
	admin.Get("/:id", hdl.GetDetail)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
	admin.Put("/:id/roles", hdl.SyncRoles)
	admin.Delete("/:id/device", hdl.ResetDevices)
	admin.Get("/:id/qrcode", hdl.QRCode)
}
