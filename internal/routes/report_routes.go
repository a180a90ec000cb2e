package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
)

func SetupReportRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewReportHandler(newLaporanUsecase(d))

	api := app.Group("/api/admin/laporan", d.auth(), d.permission(model.PermLihatLaporan))
	api.Get("/rekap-bulanan", hdl.GetMonthlyRecap)
	api.Get("/rekap-bulanan/export", hdl.ExportMonthlyRecap)
}
