package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/usecase"
)

func (h *MasterDataHandler) GetAllTahunAjaran(c *fiber.Ctx) error {
	list, err := h.uc.ListTahunAjaran()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *MasterDataHandler) GetTahunAjaran(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	ta, err := h.uc.GetTahunAjaran(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": ta})
}

func (h *MasterDataHandler) CreateTahunAjaran(c *fiber.Ctx) error {
	var req usecase.TahunAjaranRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ta, err := h.uc.CreateTahunAjaran(req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Tahun ajaran berhasil ditambahkan", ta)
}

func (h *MasterDataHandler) UpdateTahunAjaran(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.TahunAjaranRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ta, err := h.uc.UpdateTahunAjaran(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Tahun ajaran berhasil diperbarui", ta)
}

// AktifkanTahunAjaran menonaktifkan tahun ajaran lain dalam satu transaksi.
func (h *MasterDataHandler) AktifkanTahunAjaran(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	ta, err := h.uc.AktifkanTahunAjaran(id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Tahun ajaran "+ta.Nama+" sekarang aktif", ta)
}

func (h *MasterDataHandler) DeleteTahunAjaran(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteTahunAjaran(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tahun ajaran berhasil dihapus"})
}

func (h *MasterDataHandler) BulkDeleteTahunAjaran(c *fiber.Ctx) error {
	return h.bulkDelete(c, "tahun ajaran", h.uc.BulkDeleteTahunAjaran)
}
