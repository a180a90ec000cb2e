package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

type EvaluasiHandler struct {
	uc *usecase.EvaluasiUsecase
}

func NewEvaluasiHandler(uc *usecase.EvaluasiUsecase) *EvaluasiHandler {
	return &EvaluasiHandler{uc: uc}
}

func (h *EvaluasiHandler) GetAll(c *fiber.Ctx) error {
	var filter repository.EvaluasiFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}
	list, total, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}

// GetMine menampilkan evaluasi milik pegawai yang login.
func (h *EvaluasiHandler) GetMine(c *fiber.Ctx) error {
	var filter repository.EvaluasiFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}
	filter.UserID = middleware.UserID(c)
	list, total, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}

func (h *EvaluasiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	e, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": e})
}

func (h *EvaluasiHandler) Create(c *fiber.Ctx) error {
	var req usecase.EvaluasiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	e, err := h.uc.Create(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Evaluasi berhasil disimpan", e)
}

func (h *EvaluasiHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.EvaluasiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	e, err := h.uc.Update(id, middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Evaluasi berhasil diperbarui", e)
}

func (h *EvaluasiHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Evaluasi berhasil dihapus"})
}

func (h *EvaluasiHandler) BulkDelete(c *fiber.Ctx) error {
	raw, err := bulkIDs(c)
	if err != nil {
		return respondError(c, err)
	}
	n, err := h.uc.BulkDelete(raw)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("%d evaluasi berhasil dihapus", n), fiber.Map{"deleted": n})
}

// Ringkasan: ?user_id=&tahun_ajaran_id=&semester=. tahun_ajaran_id kosong berarti tahun aktif.
func (h *EvaluasiHandler) Ringkasan(c *fiber.Ctx) error {
	r, err := h.uc.Ringkasan(uint(c.QueryInt("user_id")), uint(c.QueryInt("tahun_ajaran_id")), c.Query("semester"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": r})
}

func (h *EvaluasiHandler) RingkasanMine(c *fiber.Ctx) error {
	r, err := h.uc.Ringkasan(middleware.UserID(c), uint(c.QueryInt("tahun_ajaran_id")), c.Query("semester"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": r})
}
