package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/usecase"
)

// GetAllHariLibur mendukung ?tahun=2025.
func (h *MasterDataHandler) GetAllHariLibur(c *fiber.Ctx) error {
	data, err := h.uc.ListHariLibur(c.QueryInt("tahun"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": data})
}

func (h *MasterDataHandler) GetHariLibur(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	libur, err := h.uc.GetHariLibur(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": libur})
}

func (h *MasterDataHandler) CreateHariLibur(c *fiber.Ctx) error {
	var req usecase.HariLiburRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	libur, err := h.uc.CreateHariLibur(req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Hari libur berhasil ditambahkan", libur)
}

func (h *MasterDataHandler) UpdateHariLibur(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.HariLiburRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	libur, err := h.uc.UpdateHariLibur(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Data berhasil diupdate", libur)
}

func (h *MasterDataHandler) DeleteHariLibur(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteHariLibur(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data berhasil dihapus"})
}

func (h *MasterDataHandler) BulkDeleteHariLibur(c *fiber.Ctx) error {
	return h.bulkDelete(c, "hari libur", h.uc.BulkDeleteHariLibur)
}
