package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/usecase"
)

type DashboardHandler struct {
	uc *usecase.LaporanUsecase
}

func NewDashboardHandler(uc *usecase.LaporanUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.Dashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": stats})
}
