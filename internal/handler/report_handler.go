package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/usecase"
)

type ReportHandler struct {
	uc *usecase.LaporanUsecase
}

func NewReportHandler(uc *usecase.LaporanUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetMonthlyRecap: ?bulan=&tahun=&user_id=, bulan dan tahun kosong berarti bulan berjalan.
func (h *ReportHandler) GetMonthlyRecap(c *fiber.Ctx) error {
	rekap, err := h.uc.RekapBulanan(c.QueryInt("tahun"), c.QueryInt("bulan"), uint(c.QueryInt("user_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rekap})
}

func (h *ReportHandler) ExportMonthlyRecap(c *fiber.Ctx) error {
	buf, name, err := h.uc.RekapBulananExcel(c.QueryInt("tahun"), c.QueryInt("bulan"), uint(c.QueryInt("user_id")))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(name)
	return c.Send(buf.Bytes())
}
