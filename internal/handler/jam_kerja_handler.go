package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/usecase"
)

// GetAllJamKerja mendukung ?role_id= untuk melihat jadwal satu role.
func (h *MasterDataHandler) GetAllJamKerja(c *fiber.Ctx) error {
	list, err := h.uc.ListJamKerja(uint(c.QueryInt("role_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *MasterDataHandler) GetJamKerja(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	jk, err := h.uc.GetJamKerja(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": jk})
}

// SimpanJamKerja membuat atau menimpa jadwal role pada hari yang dikirim.
func (h *MasterDataHandler) SimpanJamKerja(c *fiber.Ctx) error {
	var req usecase.JamKerjaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	jk, err := h.uc.SimpanJamKerja(req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Jam kerja berhasil disimpan", jk)
}

func (h *MasterDataHandler) UpdateJamKerja(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.JamKerjaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	jk, err := h.uc.UpdateJamKerja(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Jam kerja berhasil diperbarui", jk)
}

func (h *MasterDataHandler) DeleteJamKerja(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteJamKerja(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Jam kerja berhasil dihapus"})
}

func (h *MasterDataHandler) BulkDeleteJamKerja(c *fiber.Ctx) error {
	return h.bulkDelete(c, "jam kerja", h.uc.BulkDeleteJamKerja)
}
