package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func SetupSlipGajiRoutes(app *fiber.App, d *Dependencies) {
	uc := usecase.NewSlipGajiUsecase(
		repository.NewSlipGajiRepository(d.DB),
		repository.NewUserRepository(d.DB),
		d.Storage,
		d.Events,
		d.Config.NamaYayasan,
		d.Now,
	)
	hdl := handler.NewSlipGajiHandler(uc, d.Permissions)

	api := app.Group("/api/slip-gaji", d.auth())
	api.Get("/", hdl.GetMine)
	api.Get("/:id/unduh", hdl.Unduh)

	admin := app.Group("/api/admin/slip-gaji", d.auth(), d.permission(model.PermKelolaSlipGaji))
	admin.Get("/", hdl.GetAll)
	admin.Post("/", hdl.Create)
	admin.Post("/bulk-delete", hdl.BulkDelete)
	admin.Get("/:id", hdl.GetDetail)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
	admin.Post("/:id/terbitkan", hdl.Terbitkan)
	admin.Get("/:id/unduh", hdl.Unduh)
}
