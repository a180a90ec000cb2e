package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func SetupEvaluasiRoutes(app *fiber.App, d *Dependencies) {
	uc := usecase.NewEvaluasiUsecase(
		repository.NewEvaluasiRepository(d.DB),
		repository.NewUserRepository(d.DB),
		repository.NewTahunAjaranRepository(d.DB),
	)
	hdl := handler.NewEvaluasiHandler(uc)

	api := app.Group("/api/evaluasi", d.auth())
	api.Get("/", hdl.GetMine)
	api.Get("/ringkasan", hdl.RingkasanMine)

	admin := app.Group("/api/admin/evaluasi", d.auth(), d.permission(model.PermKelolaEvaluasi))
	admin.Get("/", hdl.GetAll)
	admin.Get("/ringkasan", hdl.Ringkasan)
	admin.Post("/", hdl.Create)
	admin.Post("/bulk-delete", hdl.BulkDelete)
	admin.Get("/:id", hdl.GetDetail)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
