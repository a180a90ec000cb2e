package web

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

const panelPerPage = 20

func totalPages(total int64, perPage int) int {
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// =====================
// PEGAWAI
// =====================

// ShowPegawai - GET /admin/pegawai
func (h *PanelHandler) ShowPegawai(c *fiber.Ctx) error {
	data := PageData{Title: "Data Pegawai", Active: "pegawai"}
	h.ambilFlash(c, &data)

	filter := repository.UserFilter{
		Search:     strings.TrimSpace(c.Query("q")),
		Pagination: repository.Pagination{Page: c.QueryInt("page", 1), PerPage: panelPerPage}.Normalize(),
	}

	list, total, err := h.pegawai.List(filter)
	if err != nil {
		data.Error = pesanError(err)
	}
	data.Pegawai = list
	data.Search = filter.Search
	data.Page = filter.Page
	data.Total = total
	data.TotalPages = totalPages(total, panelPerPage)
	return h.render(c, "pegawai", data)
}

// BulkDeletePegawai - POST /admin/pegawai/bulk-delete, ids dari checkbox dikirim dipisah koma.
func (h *PanelHandler) BulkDeletePegawai(c *fiber.Ctx) error {
	n, err := h.pegawai.BulkDelete(c.UserContext(), c.FormValue("ids"), middleware.AdminID(c))
	return h.flash(c, "/admin/pegawai", err, fmt.Sprintf("%d pegawai berhasil dihapus", n))
}

// =====================
// ABSENSI
// =====================

// ShowAbsensi - GET /admin/absensi?tanggal=YYYY-MM-DD&trashed=only
func (h *PanelHandler) ShowAbsensi(c *fiber.Ctx) error {
	data := PageData{Title: "Absensi", Active: "absensi"}
	h.ambilFlash(c, &data)

	tanggal := c.Query("tanggal")
	if tanggal == "" {
		tanggal = h.absensi.Tanggal()
	}
	filter := repository.AbsensiFilter{
		Tanggal:    tanggal,
		Trashed:    c.Query("trashed"),
		Pagination: repository.Pagination{Page: c.QueryInt("page", 1), PerPage: 100},
	}

	list, total, err := h.absensi.List(filter)
	if err != nil {
		data.Error = pesanError(err)
	}
	data.Absensi = list
	data.Tanggal = tanggal
	data.Trashed = filter.Trashed
	data.Total = total
	return h.render(c, "absensi", data)
}

func kembaliKeAbsensi(c *fiber.Ctx) string {
	to := "/admin/absensi"
	if tanggal := c.FormValue("tanggal"); tanggal != "" {
		to += "?tanggal=" + url.QueryEscape(tanggal)
	}
	return to
}

// BulkDeleteAbsensi - POST /admin/absensi/bulk-delete
func (h *PanelHandler) BulkDeleteAbsensi(c *fiber.Ctx) error {
	n, err := h.absensi.BulkDelete(c.FormValue("ids"), middleware.AdminID(c), c.IP())
	return h.flash(c, kembaliKeAbsensi(c), err, fmt.Sprintf("%d absensi berhasil dihapus", n))
}

// RestoreAbsensi - POST /admin/absensi/:id/restore
func (h *PanelHandler) RestoreAbsensi(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.flash(c, kembaliKeAbsensi(c), apperror.BadRequest("ID tidak valid"), "")
	}
	err = h.absensi.Restore(uint(id), middleware.AdminID(c), c.IP())
	return h.flash(c, kembaliKeAbsensi(c), err, "Absensi berhasil dipulihkan")
}

// =====================
// CUTI
// =====================

// ShowCuti - GET /admin/cuti, daftar pengajuan yang menunggu tahap milik admin yang login.
func (h *PanelHandler) ShowCuti(c *fiber.Ctx) error {
	data := PageData{Title: "Persetujuan Cuti", Active: "cuti"}
	h.ambilFlash(c, &data)

	list, err := h.cuti.Antrean(middleware.AdminID(c))
	if err != nil {
		data.Error = pesanError(err)
	}
	data.Cuti = list
	return h.render(c, "cuti", data)
}

// SetujuiCuti - POST /admin/cuti/:id/setujui
func (h *PanelHandler) SetujuiCuti(c *fiber.Ctx) error {
	return h.prosesCuti(c, true)
}

// TolakCuti - POST /admin/cuti/:id/tolak
func (h *PanelHandler) TolakCuti(c *fiber.Ctx) error {
	return h.prosesCuti(c, false)
}

func (h *PanelHandler) prosesCuti(c *fiber.Ctx, setuju bool) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.flash(c, "/admin/cuti", apperror.BadRequest("ID tidak valid"), "")
	}
	req := usecase.ProsesCutiRequest{Catatan: strings.TrimSpace(c.FormValue("catatan"))}

	if setuju {
		_, err = h.cuti.Setujui(uint(id), middleware.AdminID(c), req)
		return h.flash(c, "/admin/cuti", err, "Pengajuan cuti disetujui")
	}
	_, err = h.cuti.Tolak(uint(id), middleware.AdminID(c), req)
	return h.flash(c, "/admin/cuti", err, "Pengajuan cuti ditolak")
}
