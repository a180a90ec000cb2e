package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/usecase"
)

// MasterDataHandler melayani data referensi. Method per entitas ada di file terpisah.
type MasterDataHandler struct {
	uc *usecase.MasterDataUsecase
}

func NewMasterDataHandler(uc *usecase.MasterDataUsecase) *MasterDataHandler {
	return &MasterDataHandler{uc: uc}
}

func (h *MasterDataHandler) bulkDelete(c *fiber.Ctx, entitas string, del func(string) (int64, error)) error {
	raw, err := bulkIDs(c)
	if err != nil {
		return respondError(c, err)
	}
	n, err := del(raw)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("%d %s berhasil dihapus", n, entitas), fiber.Map{"deleted": n})
}

// ---------- Departemen ----------

func (h *MasterDataHandler) GetAllDepartemen(c *fiber.Ctx) error {
	list, err := h.uc.ListDepartemen(c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *MasterDataHandler) GetDepartemen(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	d, err := h.uc.GetDepartemen(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": d})
}

func (h *MasterDataHandler) CreateDepartemen(c *fiber.Ctx) error {
	var req usecase.DepartemenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	d, err := h.uc.CreateDepartemen(req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Departemen berhasil ditambahkan", d)
}

func (h *MasterDataHandler) UpdateDepartemen(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.DepartemenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	d, err := h.uc.UpdateDepartemen(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Departemen berhasil diperbarui", d)
}

func (h *MasterDataHandler) DeleteDepartemen(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteDepartemen(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Departemen berhasil dihapus"})
}

func (h *MasterDataHandler) BulkDeleteDepartemen(c *fiber.Ctx) error {
	return h.bulkDelete(c, "departemen", h.uc.BulkDeleteDepartemen)
}

// ---------- Jabatan ----------

func (h *MasterDataHandler) GetAllJabatan(c *fiber.Ctx) error {
	list, err := h.uc.ListJabatan(c.Query("search"), uint(c.QueryInt("departemen_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *MasterDataHandler) GetJabatan(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	j, err := h.uc.GetJabatan(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": j})
}

func (h *MasterDataHandler) CreateJabatan(c *fiber.Ctx) error {
	var req usecase.JabatanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	j, err := h.uc.CreateJabatan(req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Jabatan berhasil ditambahkan", j)
}

func (h *MasterDataHandler) UpdateJabatan(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.JabatanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	j, err := h.uc.UpdateJabatan(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Jabatan berhasil diperbarui", j)
}

func (h *MasterDataHandler) DeleteJabatan(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteJabatan(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Jabatan berhasil dihapus"})
}

func (h *MasterDataHandler) BulkDeleteJabatan(c *fiber.Ctx) error {
	return h.bulkDelete(c, "jabatan", h.uc.BulkDeleteJabatan)
}

// ---------- Tempat Kerja ----------

func (h *MasterDataHandler) GetAllTempatKerja(c *fiber.Ctx) error {
	list, err := h.uc.ListTempatKerja(c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *MasterDataHandler) GetTempatKerja(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	t, err := h.uc.GetTempatKerja(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": t})
}

func (h *MasterDataHandler) CreateTempatKerja(c *fiber.Ctx) error {
	var req usecase.TempatKerjaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	t, err := h.uc.CreateTempatKerja(req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Tempat kerja berhasil ditambahkan", t)
}

func (h *MasterDataHandler) UpdateTempatKerja(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.TempatKerjaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	t, err := h.uc.UpdateTempatKerja(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Tempat kerja berhasil diperbarui", t)
}

func (h *MasterDataHandler) DeleteTempatKerja(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteTempatKerja(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tempat kerja berhasil dihapus"})
}

func (h *MasterDataHandler) BulkDeleteTempatKerja(c *fiber.Ctx) error {
	return h.bulkDelete(c, "tempat kerja", h.uc.BulkDeleteTempatKerja)
}
