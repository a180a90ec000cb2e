package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

type CutiHandler struct {
	uc    *usecase.CutiUsecase
	perms *usecase.PermissionService
}

func NewCutiHandler(uc *usecase.CutiUsecase, perms *usecase.PermissionService) *CutiHandler {
	return &CutiHandler{uc: uc, perms: perms}
}

// Ajukan menerima multipart: jenis_cuti, tanggal_mulai, tanggal_selesai, alasan, file (opsional).
func (h *CutiHandler) Ajukan(c *fiber.Ctx) error {
	var req usecase.AjukanCutiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	cuti, err := h.uc.Ajukan(c.UserContext(), middleware.UserID(c), req, formFile(c, "file"))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Pengajuan cuti berhasil dikirim", cuti)
}

func (h *CutiHandler) GetMine(c *fiber.Ctx) error {
	var filter repository.CutiFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}

	list, total, err := h.uc.ListMilik(middleware.UserID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}

// Kuota mendukung ?tahun=, default tahun berjalan.
func (h *CutiHandler) Kuota(c *fiber.Ctx) error {
	kuota, err := h.uc.Kuota(middleware.UserID(c), c.QueryInt("tahun"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": kuota})
}

func (h *CutiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	userID, roles := middleware.UserID(c), middleware.Roles(c)
	admin, err := h.perms.Allowed(c.UserContext(), userID, model.PermKelolaCuti)
	if err != nil {
		return respondError(c, err)
	}

	cuti, err := h.uc.Detail(id, userID, roles, admin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":     cuti,
		"file_url": h.uc.FileURL(cuti.FilePendukung),
	})
}

func (h *CutiHandler) Batalkan(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	cuti, err := h.uc.Batalkan(id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Pengajuan cuti dibatalkan", cuti)
}

// Antrean berisi pengajuan yang menunggu tahap milik role user yang login.
func (h *CutiHandler) Antrean(c *fiber.Ctx) error {
	list, err := h.uc.Antrean(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *CutiHandler) Setujui(c *fiber.Ctx) error {
	return h.proses(c, true)
}

func (h *CutiHandler) Tolak(c *fiber.Ctx) error {
	return h.proses(c, false)
}

func (h *CutiHandler) proses(c *fiber.Ctx, setuju bool) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.ProsesCutiRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
	}

	var cuti *model.PengajuanCuti
	if setuju {
		cuti, err = h.uc.Setujui(id, middleware.UserID(c), req)
	} else {
		cuti, err = h.uc.Tolak(id, middleware.UserID(c), req)
	}
	if err != nil {
		return respondError(c, err)
	}

	message := "Pengajuan cuti ditolak"
	if setuju {
		message = "Pengajuan cuti disetujui"
	}
	return success(c, message, cuti)
}

// GetAll untuk admin: ?user_id=&status=&jenis_cuti=&tahun=&page=&per_page=
func (h *CutiHandler) GetAll(c *fiber.Ctx) error {
	var filter repository.CutiFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}

	list, total, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}
