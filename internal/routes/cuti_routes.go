package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func newCutiUsecase(d *Dependencies) *usecase.CutiUsecase {
	return usecase.NewCutiUsecase(
		repository.NewPengajuanCutiRepository(d.DB),
		repository.NewUserRepository(d.DB),
		d.kalender(),
		d.Storage,
		d.Events,
		d.Config.Cuti,
		d.location(),
		d.Now,
	)
}

func SetupCutiRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewCutiHandler(newCutiUsecase(d), d.Permissions)
	approver := middleware.Role(model.RoleKepalaSekolah, model.RoleHRD, model.RoleDirektur)

	api := app.Group("/api/cuti", d.auth())
	api.Post("/", hdl.Ajukan)
	api.Get("/", hdl.GetMine)
	api.Get("/kuota", hdl.Kuota)
	api.Get("/antrean", approver, hdl.Antrean)
	api.Get("/:id", hdl.GetDetail)
	api.Post("/:id/batal", hdl.Batalkan)
	api.Post("/:id/setujui", approver, hdl.Setujui)
	api.Post("/:id/tolak", approver, hdl.Tolak)

	admin := app.Group("/api/admin/cuti", d.auth(), d.permission(model.PermKelolaCuti))
	admin.Get("/", hdl.GetAll)
}
