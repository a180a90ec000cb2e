package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

type SlipGajiHandler struct {
	uc    *usecase.SlipGajiUsecase
	perms *usecase.PermissionService
}

func NewSlipGajiHandler(uc *usecase.SlipGajiUsecase, perms *usecase.PermissionService) *SlipGajiHandler {
	return &SlipGajiHandler{uc: uc, perms: perms}
}

func (h *SlipGajiHandler) GetAll(c *fiber.Ctx) error {
	var filter repository.SlipGajiFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}
	list, total, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}

func (h *SlipGajiHandler) GetMine(c *fiber.Ctx) error {
	var filter repository.SlipGajiFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}
	list, total, err := h.uc.ListMilik(middleware.UserID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}

func (h *SlipGajiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": s})
}

// Create menerima multipart. File PDF opsional, tanpa file slip dibuat otomatis.
func (h *SlipGajiHandler) Create(c *fiber.Ctx) error {
	var req usecase.SlipGajiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	s, err := h.uc.Create(c.UserContext(), req, formFile(c, "file"))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Slip gaji berhasil dibuat", s)
}

func (h *SlipGajiHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.SlipGajiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	s, err := h.uc.Update(c.UserContext(), id, req, formFile(c, "file"))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Slip gaji berhasil diperbarui", s)
}

func (h *SlipGajiHandler) Terbitkan(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.Terbitkan(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Slip gaji diterbitkan", s)
}

// Unduh dipakai pegawai dan admin. Pegawai hanya bisa mengunduh slip sendiri yang sudah terbit.
func (h *SlipGajiHandler) Unduh(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	userID := middleware.UserID(c)
	admin, err := h.perms.Allowed(c.UserContext(), userID, model.PermKelolaSlipGaji)
	if err != nil {
		return respondError(c, err)
	}

	rc, name, err := h.uc.Unduh(c.UserContext(), id, userID, admin)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(name)
	return c.SendStream(rc)
}

func (h *SlipGajiHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Slip gaji berhasil dihapus"})
}

func (h *SlipGajiHandler) BulkDelete(c *fiber.Ctx) error {
	raw, err := bulkIDs(c)
	if err != nil {
		return respondError(c, err)
	}
	n, err := h.uc.BulkDelete(c.UserContext(), raw)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("%d slip gaji berhasil dihapus", n), fiber.Map{"deleted": n})
}
