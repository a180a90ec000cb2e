package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

type PegawaiHandler struct {
	uc *usecase.PegawaiUsecase
}

func NewPegawaiHandler(uc *usecase.PegawaiUsecase) *PegawaiHandler {
	return &PegawaiHandler{uc: uc}
}

type SyncRolesRequest struct {
	RoleIDs []uint `json:"role_ids"`
}

// GetAll mendukung ?search=&departemen_id=&jabatan_id=&role=&is_active=&page=&per_page=
func (h *PegawaiHandler) GetAll(c *fiber.Ctx) error {
	var filter repository.UserFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}

	list, total, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}

func (h *PegawaiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *PegawaiHandler) Create(c *fiber.Ctx) error {
	var req usecase.PegawaiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.uc.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Pegawai berhasil ditambahkan", user)
}

func (h *PegawaiHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.PegawaiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.uc.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Data pegawai berhasil diperbarui", user)
}

func (h *PegawaiHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if id == middleware.UserID(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tidak dapat menghapus akun sendiri"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pegawai berhasil dihapus"})
}

func (h *PegawaiHandler) BulkDelete(c *fiber.Ctx) error {
	raw, err := bulkIDs(c)
	if err != nil {
		return respondError(c, err)
	}
	n, err := h.uc.BulkDelete(c.UserContext(), raw, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("%d pegawai berhasil dihapus", n), fiber.Map{"deleted": n})
}

func (h *PegawaiHandler) SyncRoles(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req SyncRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.uc.SyncRoles(c.UserContext(), id, req.RoleIDs)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Role pegawai berhasil diperbarui", user)
}

// ResetDevices menghapus device terdaftar agar pegawai bisa login dari HP baru.
func (h *PegawaiHandler) ResetDevices(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ResetDevices(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Device pegawai berhasil direset"})
}

func (h *PegawaiHandler) Export(c *fiber.Ctx) error {
	var filter repository.UserFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}

	buf, err := h.uc.Export(filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment("data-pegawai.xlsx")
	return c.Send(buf.Bytes())
}

func (h *PegawaiHandler) QRCode(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	png, name, err := h.uc.QRCode(id, c.QueryInt("size", 256))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Send(png)
}
