package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

type AbsensiHandler struct {
	uc *usecase.AbsensiUsecase
}

func NewAbsensiHandler(uc *usecase.AbsensiUsecase) *AbsensiHandler {
	return &AbsensiHandler{uc: uc}
}

type HapusAbsensiRequest struct {
	Alasan string `json:"alasan"`
}

func (h *AbsensiHandler) CheckIn(c *fiber.Ctx) error {
	var req usecase.LokasiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	absensi, lokasi, err := h.uc.CheckIn(middleware.UserID(c), req, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Check-in berhasil",
		"data":    absensi,
		"lokasi":  lokasi,
	})
}

func (h *AbsensiHandler) CheckOut(c *fiber.Ctx) error {
	var req usecase.LokasiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	absensi, lokasi, err := h.uc.CheckOut(middleware.UserID(c), req, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Check-out berhasil",
		"data":    absensi,
		"lokasi":  lokasi,
	})
}

// CekLokasi dipakai aplikasi sebelum tombol absen diaktifkan.
func (h *AbsensiHandler) CekLokasi(c *fiber.Ctx) error {
	var req usecase.LokasiRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	lokasi, err := h.uc.CekLokasi(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lokasi})
}

// Izin menerima multipart: jenis, keterangan, file (wajib untuk sakit).
func (h *AbsensiHandler) Izin(c *fiber.Ctx) error {
	var req usecase.IzinRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	absensi, err := h.uc.Izin(c.UserContext(), middleware.UserID(c), req, formFile(c, "file"), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Pengajuan "+req.Jenis+" berhasil dicatat", absensi)
}

func (h *AbsensiHandler) HariIni(c *fiber.Ctx) error {
	result, err := h.uc.HariIni(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": result})
}

// GetHistory mendukung ?bulan=&tahun=, default bulan berjalan.
func (h *AbsensiHandler) GetHistory(c *fiber.Ctx) error {
	list, err := h.uc.Riwayat(middleware.UserID(c), c.QueryInt("tahun"), c.QueryInt("bulan"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

// ---- admin ----

// GetAll mendukung ?tanggal=&user_id=&status=&trashed=with|only&bulan=&tahun=&page=&per_page=
func (h *AbsensiHandler) GetAll(c *fiber.Ctx) error {
	var filter repository.AbsensiFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c)
	}

	list, total, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, list, total, filter.Pagination)
}

func (h *AbsensiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	absensi, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":     absensi,
		"file_url": h.uc.FileURL(absensi.FilePendukung),
	})
}

func (h *AbsensiHandler) Create(c *fiber.Ctx) error {
	var req usecase.AbsensiAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	absensi, err := h.uc.Create(req, middleware.UserID(c), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Absensi berhasil ditambahkan", absensi)
}

func (h *AbsensiHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.AbsensiAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	absensi, err := h.uc.Update(id, req, middleware.UserID(c), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Absensi berhasil diperbarui", absensi)
}

// Delete melakukan soft delete. Data masih bisa dipulihkan lewat Restore.
func (h *AbsensiHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req HapusAbsensiRequest
	_ = c.BodyParser(&req)

	if err := h.uc.Delete(id, middleware.UserID(c), c.IP(), req.Alasan); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Absensi berhasil dihapus"})
}

func (h *AbsensiHandler) Restore(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Restore(id, middleware.UserID(c), c.IP()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Absensi berhasil dipulihkan"})
}

func (h *AbsensiHandler) ForceDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ForceDelete(c.UserContext(), id, middleware.UserID(c), c.IP()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Absensi dihapus permanen"})
}

func (h *AbsensiHandler) BulkDelete(c *fiber.Ctx) error {
	raw, err := bulkIDs(c)
	if err != nil {
		return respondError(c, err)
	}
	n, err := h.uc.BulkDelete(raw, middleware.UserID(c), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("%d absensi berhasil dihapus", n), fiber.Map{"deleted": n})
}

func (h *AbsensiHandler) Logs(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	logs, err := h.uc.Logs(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": logs})
}
