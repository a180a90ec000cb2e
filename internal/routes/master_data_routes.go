package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func newMasterDataUsecase(d *Dependencies) *usecase.MasterDataUsecase {
	return usecase.NewMasterDataUsecase(
		repository.NewDepartemenRepository(d.DB),
		repository.NewJabatanRepository(d.DB),
		repository.NewTempatKerjaRepository(d.DB),
		repository.NewJamKerjaRepository(d.DB),
		repository.NewHariLiburRepository(d.DB),
		repository.NewTahunAjaranRepository(d.DB),
		repository.NewRoleRepository(d.DB),
	)
}

func SetupMasterDataRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewMasterDataHandler(newMasterDataUsecase(d))

	// Daftar referensi boleh dibaca semua pegawai (dropdown di aplikasi)
	ref := app.Group("/api/master", d.auth())
	ref.Get("/departemen", hdl.GetAllDepartemen)
	ref.Get("/jabatan", hdl.GetAllJabatan)
	ref.Get("/tempat-kerja", hdl.GetAllTempatKerja)
	ref.Get("/hari-libur", hdl.GetAllHariLibur)
	ref.Get("/tahun-ajaran", hdl.GetAllTahunAjaran)

	admin := app.Group("/api/admin/master", d.auth(), d.permission(model.PermKelolaMasterData))

	departemen := admin.Group("/departemen")
	departemen.Get("/", hdl.GetAllDepartemen)
	departemen.Post("/bulk-delete", hdl.BulkDeleteDepartemen)
	departemen.Get("/:id", hdl.GetDepartemen)
	departemen.Post("/", hdl.CreateDepartemen)
	departemen.Put("/:id", hdl.UpdateDepartemen)
	departemen.Delete("/:id", hdl.DeleteDepartemen)

	jabatan := admin.Group("/jabatan")
	jabatan.Get("/", hdl.GetAllJabatan)
	jabatan.Post("/bulk-delete", hdl.BulkDeleteJabatan)
	jabatan.Get("/:id", hdl.GetJabatan)
	jabatan.Post("/", hdl.CreateJabatan)
	jabatan.Put("/:id", hdl.UpdateJabatan)
	jabatan.Delete("/:id", hdl.DeleteJabatan)

	tempat := admin.Group("/tempat-kerja")
	tempat.Get("/", hdl.GetAllTempatKerja)
	tempat.Post("/bulk-delete", hdl.BulkDeleteTempatKerja)
	tempat.Get("/:id", hdl.GetTempatKerja)
	tempat.Post("/", hdl.CreateTempatKerja)
	tempat.Put("/:id", hdl.UpdateTempatKerja)
	tempat.Delete("/:id", hdl.DeleteTempatKerja)

	jamKerja := admin.Group("/jam-kerja")
	jamKerja.Get("/", hdl.GetAllJamKerja)
	jamKerja.Post("/bulk-delete", hdl.BulkDeleteJamKerja)
	jamKerja.Get("/:id", hdl.GetJamKerja)
	jamKerja.Post("/", hdl.SimpanJamKerja)
	jamKerja.Put("/:id", hdl.UpdateJamKerja)
	jamKerja.Delete("/:id", hdl.DeleteJamKerja)

	libur := admin.Group("/hari-libur")
	libur.Get("/", hdl.GetAllHariLibur)
	libur.Post("/bulk-delete", hdl.BulkDeleteHariLibur)
	libur.Get("/:id", hdl.GetHariLibur)
	libur.Post("/", hdl.CreateHariLibur)
	libur.Put("/:id", hdl.UpdateHariLibur)
	libur.Delete("/:id", hdl.DeleteHariLibur)

	tahun := admin.Group("/tahun-ajaran")
	tahun.Get("/", hdl.GetAllTahunAjaran)
	tahun.Post("/bulk-delete", hdl.BulkDeleteTahunAjaran)
	tahun.Get("/:id", hdl.GetTahunAjaran)
	tahun.Post("/", hdl.CreateTahunAjaran)
	tahun.Put("/:id", hdl.UpdateTahunAjaran)
	tahun.Post("/:id/aktifkan", hdl.AktifkanTahunAjaran)
	tahun.Delete("/:id", hdl.DeleteTahunAjaran)
}
