package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func newLaporanUsecase(d *Dependencies) *usecase.LaporanUsecase {
	return usecase.NewLaporanUsecase(
		repository.NewDashboardRepository(d.DB),
		repository.NewUserRepository(d.DB),
		repository.NewAbsensiRepository(d.DB),
		repository.NewPengajuanCutiRepository(d.DB),
		d.location(),
		d.Now,
	)
}

func SetupDashboardRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewDashboardHandler(newLaporanUsecase(d))

	api := app.Group("/api/admin/dashboard", d.auth(), d.permission(model.PermLihatLaporan))
	api.Get("/", hdl.GetStats)
}
