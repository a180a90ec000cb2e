package usecase

import (
	"context"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/geo"
	"sdm-yayasan-backend/internal/pkg/idlist"
	"sdm-yayasan-backend/internal/pkg/storage"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

type LokasiRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type IzinRequest struct {
	Jenis      string `json:"jenis" form:"jenis" validate:"required,oneof=izin sakit"`
	Keterangan string `json:"keterangan" form:"keterangan" validate:"required,notblank,max=500"`
}

// AbsensiAdminRequest dipakai admin untuk membuat atau mengoreksi absensi secara manual.
type AbsensiAdminRequest struct {
	UserID     uint   `json:"user_id" validate:"required"`
	Tanggal    string `json:"tanggal" validate:"required,tanggal"`
	JamMasuk   string `json:"jam_masuk" validate:"omitempty,jam"`
	JamPulang  string `json:"jam_pulang" validate:"omitempty,jam"`
	Status     string `json:"status" validate:"required,oneof=hadir terlambat izin sakit cuti alpha"`
	Keterangan string `json:"keterangan" validate:"max=500"`
	Alasan     string `json:"alasan" validate:"max=500"` // masuk ke log aktivitas
}

type LokasiResult struct {
	TempatKerja *model.TempatKerja `json:"tempat_kerja"`
	Jarak       float64            `json:"jarak"`
	Radius      float64            `json:"radius"`
	DalamRadius bool               `json:"dalam_radius"`
}

type HariIniResult struct {
	Jadwal  Jadwal         `json:"jadwal"`
	Absensi *model.Absensi `json:"absensi"`
}

type AbsensiUsecase struct {
	repo     repository.AbsensiRepository
	users    repository.UserRepository
	kalender *Kalender
	store    storage.Storage
	cfg      config.AbsensiConfig
	loc      *time.Location
	now      Clock
}

func NewAbsensiUsecase(
	repo repository.AbsensiRepository,
	users repository.UserRepository,
	kalender *Kalender,
	store storage.Storage,
	cfg config.AbsensiConfig,
	loc *time.Location,
	now Clock,
) *AbsensiUsecase {
	if now == nil {
		now = time.Now
	}
	return &AbsensiUsecase{repo: repo, users: users, kalender: kalender, store: store, cfg: cfg, loc: loc, now: now}
}

func (u *AbsensiUsecase) today() time.Time {
	return u.now().In(u.loc)
}

// Tanggal mengembalikan tanggal hari ini (YYYY-MM-DD) menurut zona waktu aplikasi.
func (u *AbsensiUsecase) Tanggal() string {
	return u.today().Format(layoutTanggal)
}

func (u *AbsensiUsecase) pegawai(userID uint) (*model.User, error) {
	user, err := u.users.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan", "find user")
	}
	return user, nil
}

// cekLokasi menghitung jarak perangkat ke tempat kerja pegawai.
func (u *AbsensiUsecase) cekLokasi(user *model.User, req LokasiRequest) (*LokasiResult, error) {
	if user.ProfilePekerjaan == nil || user.ProfilePekerjaan.TempatKerja == nil {
		return nil, apperror.BadRequest("Tempat kerja Anda belum diatur. Hubungi admin.")
	}
	tempat := user.ProfilePekerjaan.TempatKerja
	radius := tempat.RadiusMeter
	if radius <= 0 {
		radius = u.cfg.RadiusMeter
	}
	jarak := geo.Distance(tempat.Latitude, tempat.Longitude, *req.Latitude, *req.Longitude)
	return &LokasiResult{
		TempatKerja: tempat,
		Jarak:       math.Round(jarak*100) / 100,
		Radius:      radius,
		DalamRadius: jarak <= radius,
	}, nil
}

func (u *AbsensiUsecase) CekLokasi(userID uint, req LokasiRequest) (*LokasiResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := u.pegawai(userID)
	if err != nil {
		return nil, err
	}
	return u.cekLokasi(user, req)
}

func pesanSudahAbsen(a *model.Absensi) *apperror.Error {
	if a.TidakMasuk() {
		return apperror.Conflict(fmt.Sprintf("Anda tercatat %s hari ini", a.Status))
	}
	return apperror.Conflict("Anda sudah melakukan check-in hari ini")
}

// CheckIn mencatat jam masuk. Status terlambat bila lewat jam masuk ditambah toleransi.
func (u *AbsensiUsecase) CheckIn(userID uint, req LokasiRequest, ip string) (*model.Absensi, *LokasiResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, nil, err
	}
	user, err := u.pegawai(userID)
	if err != nil {
		return nil, nil, err
	}
	lokasi, err := u.cekLokasi(user, req)
	if err != nil {
		return nil, nil, err
	}
	if !lokasi.DalamRadius {
		return nil, lokasi, apperror.BadRequest(fmt.Sprintf(
			"Anda berada di luar radius tempat kerja (%.0f m dari %s, maksimal %.0f m)",
			lokasi.Jarak, lokasi.TempatKerja.Nama, lokasi.Radius))
	}

	now := u.today()
	tanggal := now.Format(layoutTanggal)

	jadwal, err := u.kalender.Jadwal(user, now)
	if err != nil {
		return nil, nil, internal(err, "jadwal")
	}
	if jadwal.Libur {
		return nil, lokasi, apperror.BadRequest("Hari ini libur (" + jadwal.Keterangan + "), tidak perlu absen")
	}

	// baris yang sudah dihapus tetap dihitung agar satu hari hanya punya satu baris
	existing, err := u.repo.FindByUserAndDate(userID, tanggal, true)
	if err == nil {
		return nil, lokasi, pesanSudahAbsen(existing)
	}
	if !repository.IsNotFound(err) {
		return nil, nil, internal(err, "find absensi")
	}

	jamMasuk, err := gabungJam(now, jadwal.JamMasuk, u.loc)
	if err != nil {
		return nil, nil, internal(err, "parse jam masuk")
	}
	status := model.StatusHadir
	if now.After(jamMasuk.Add(time.Duration(u.cfg.ToleransiMenit) * time.Minute)) {
		status = model.StatusTerlambat
	}

	jarak := lokasi.Jarak
	absensi := &model.Absensi{
		UserID:         userID,
		Tanggal:        tanggal,
		JamMasuk:       &now,
		LatitudeMasuk:  req.Latitude,
		LongitudeMasuk: req.Longitude,
		JarakMasuk:     &jarak,
		Status:         status,
	}
	if err := u.repo.Create(absensi, model.AksiCheckIn, repository.Audit{ActorID: &userID, IPAddress: ip}); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, lokasi, apperror.Conflict("Anda sudah melakukan check-in hari ini")
		}
		return nil, nil, internal(err, "create absensi")
	}
	return absensi, lokasi, nil
}

// CheckOut mencatat jam pulang. pulang_cepat bila sebelum jam pulang jadwal.
func (u *AbsensiUsecase) CheckOut(userID uint, req LokasiRequest, ip string) (*model.Absensi, *LokasiResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, nil, err
	}
	user, err := u.pegawai(userID)
	if err != nil {
		return nil, nil, err
	}

	now := u.today()
	absensi, err := u.repo.FindByUserAndDate(userID, now.Format(layoutTanggal), false)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, apperror.BadRequest("Anda belum melakukan check-in hari ini")
		}
		return nil, nil, internal(err, "find absensi")
	}
	if absensi.TidakMasuk() {
		return nil, nil, apperror.BadRequest(fmt.Sprintf("Anda tercatat %s hari ini, tidak perlu check-out", absensi.Status))
	}
	if !absensi.SudahCheckIn() {
		return nil, nil, apperror.BadRequest("Anda belum melakukan check-in hari ini")
	}
	if absensi.SudahCheckOut() {
		return nil, nil, apperror.Conflict("Anda sudah melakukan check-out hari ini")
	}

	lokasi, err := u.cekLokasi(user, req)
	if err != nil {
		return nil, nil, err
	}
	if !lokasi.DalamRadius {
		return nil, lokasi, apperror.BadRequest(fmt.Sprintf(
			"Anda berada di luar radius tempat kerja (%.0f m dari %s, maksimal %.0f m)",
			lokasi.Jarak, lokasi.TempatKerja.Nama, lokasi.Radius))
	}

	jadwal, err := u.kalender.Jadwal(user, now)
	if err != nil {
		return nil, nil, internal(err, "jadwal")
	}
	jamPulang, err := gabungJam(now, jadwal.JamPulang, u.loc)
	if err != nil {
		return nil, nil, internal(err, "parse jam pulang")
	}
	pulangCepat := now.Before(jamPulang)

	updated, err := u.repo.CheckOut(absensi.ID, now, *req.Latitude, *req.Longitude, pulangCepat, repository.Audit{ActorID: &userID, IPAddress: ip})
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, lokasi, apperror.Conflict("Anda sudah melakukan check-out hari ini")
		}
		return nil, nil, internal(err, "check out")
	}
	return updated, lokasi, nil
}

// Izin mencatat izin atau sakit untuk hari ini. Surat keterangan wajib untuk sakit.
func (u *AbsensiUsecase) Izin(ctx context.Context, userID uint, req IzinRequest, file *multipart.FileHeader, ip string) (*model.Absensi, error) {
	fields := validation.Fields(req)
	if fields == nil {
		fields = map[string]string{}
	}
	if req.Jenis == model.StatusSakit && file == nil {
		fields["file"] = "surat keterangan sakit wajib diunggah"
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	tanggal := u.today().Format(layoutTanggal)
	existing, err := u.repo.FindByUserAndDate(userID, tanggal, true)
	if err == nil {
		return nil, pesanSudahAbsen(existing)
	}
	if !repository.IsNotFound(err) {
		return nil, internal(err, "find absensi")
	}

	var key string
	if file != nil {
		key, err = storage.SaveUpload(ctx, u.store, "absensi", file, storage.DokumenTypes)
		if err != nil {
			return nil, internal(err, "save upload")
		}
	}

	absensi := &model.Absensi{
		UserID:        userID,
		Tanggal:       tanggal,
		Status:        req.Jenis,
		Keterangan:    req.Keterangan,
		FilePendukung: key,
	}
	if err := u.repo.Create(absensi, model.AksiIzin, repository.Audit{ActorID: &userID, IPAddress: ip}); err != nil {
		u.removeFile(ctx, key)
		if repository.IsDuplicateKey(err) {
			return nil, apperror.Conflict("Absensi hari ini sudah tercatat")
		}
		return nil, internal(err, "create izin")
	}
	return absensi, nil
}

func (u *AbsensiUsecase) removeFile(ctx context.Context, key string) {
	if key == "" {
		return
	}
	_ = u.store.Delete(ctx, key)
}

func (u *AbsensiUsecase) HariIni(userID uint) (*HariIniResult, error) {
	user, err := u.pegawai(userID)
	if err != nil {
		return nil, err
	}
	now := u.today()
	jadwal, err := u.kalender.Jadwal(user, now)
	if err != nil {
		return nil, internal(err, "jadwal")
	}
	result := &HariIniResult{Jadwal: jadwal}
	absensi, err := u.repo.FindByUserAndDate(userID, now.Format(layoutTanggal), false)
	switch {
	case err == nil:
		result.Absensi = absensi
	case !repository.IsNotFound(err):
		return nil, internal(err, "find absensi")
	}
	return result, nil
}

// Riwayat mengembalikan absensi satu bulan. Bulan/tahun kosong berarti bulan berjalan.
func (u *AbsensiUsecase) Riwayat(userID uint, tahun, bulan int) ([]model.Absensi, error) {
	now := u.today()
	if tahun == 0 {
		tahun = now.Year()
	}
	if bulan == 0 {
		bulan = int(now.Month())
	}
	if bulan < 1 || bulan > 12 {
		return nil, apperror.Field("bulan", "bulan harus antara 1 dan 12")
	}
	list, err := u.repo.ListByUserMonth(userID, tahun, bulan)
	if err != nil {
		return nil, internal(err, "riwayat absensi")
	}
	return list, nil
}

func (u *AbsensiUsecase) FileURL(key string) string {
	if key == "" {
		return ""
	}
	return u.store.URL(key)
}

// ---- admin ----

func (u *AbsensiUsecase) List(filter repository.AbsensiFilter) ([]model.Absensi, int64, error) {
	switch filter.Trashed {
	case "", repository.TrashedWith, repository.TrashedOnly:
	default:
		return nil, 0, apperror.Field("trashed", "trashed harus with atau only")
	}
	list, total, err := u.repo.List(filter)
	if err != nil {
		return nil, 0, internal(err, "list absensi")
	}
	return list, total, nil
}

func (u *AbsensiUsecase) Get(id uint) (*model.Absensi, error) {
	absensi, err := u.repo.GetByID(id, true)
	if err != nil {
		return nil, notFoundOr(err, "Absensi tidak ditemukan", "get absensi")
	}
	return absensi, nil
}

func (u *AbsensiUsecase) applyAdmin(a *model.Absensi, req AbsensiAdminRequest) error {
	tanggal, err := parseTanggal(req.Tanggal, u.loc)
	if err != nil {
		return apperror.Field("tanggal", "tanggal tidak valid")
	}
	a.UserID = req.UserID
	a.Tanggal = req.Tanggal
	a.Status = req.Status
	a.Keterangan = req.Keterangan
	a.JamMasuk = nil
	a.JamPulang = nil
	if req.JamMasuk != "" {
		t, _ := gabungJam(tanggal, req.JamMasuk, u.loc)
		a.JamMasuk = &t
	}
	if req.JamPulang != "" {
		t, _ := gabungJam(tanggal, req.JamPulang, u.loc)
		a.JamPulang = &t
	}
	if a.JamMasuk != nil && a.JamPulang != nil && a.JamPulang.Before(*a.JamMasuk) {
		return apperror.Field("jam_pulang", "jam pulang tidak boleh sebelum jam masuk")
	}
	if a.JamPulang != nil && a.JamMasuk == nil {
		return apperror.Field("jam_masuk", "jam masuk wajib diisi bila jam pulang diisi")
	}
	a.PulangCepat = false
	if a.JamPulang != nil {
		user, err := u.pegawai(req.UserID)
		if err != nil {
			return err
		}
		jadwal, err := u.kalender.Jadwal(user, tanggal)
		if err != nil {
			return internal(err, "jadwal")
		}
		if jp, err := gabungJam(tanggal, jadwal.JamPulang, u.loc); err == nil {
			a.PulangCepat = a.JamPulang.Before(jp)
		}
	}
	return nil
}

func (u *AbsensiUsecase) Create(req AbsensiAdminRequest, actorID uint, ip string) (*model.Absensi, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := u.pegawai(req.UserID); err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Code == http.StatusNotFound {
			return nil, apperror.Field("user_id", "pegawai tidak ditemukan")
		}
		return nil, err
	}
	existing, err := u.repo.FindByUserAndDate(req.UserID, req.Tanggal, true)
	if err == nil {
		if existing.DeletedAt.Valid {
			return nil, apperror.Conflict("Absensi tanggal ini ada di tempat sampah. Pulihkan atau hapus permanen terlebih dahulu.")
		}
		return nil, apperror.Conflict("Absensi pegawai pada tanggal ini sudah ada")
	}
	if !repository.IsNotFound(err) {
		return nil, internal(err, "find absensi")
	}

	absensi := &model.Absensi{}
	if err := u.applyAdmin(absensi, req); err != nil {
		return nil, err
	}
	audit := repository.Audit{ActorID: &actorID, IPAddress: ip, Keterangan: req.Alasan}
	if err := u.repo.Create(absensi, model.AksiBuat, audit); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperror.Conflict("Absensi pegawai pada tanggal ini sudah ada")
		}
		return nil, internal(err, "create absensi")
	}
	return absensi, nil
}

func (u *AbsensiUsecase) Update(id uint, req AbsensiAdminRequest, actorID uint, ip string) (*model.Absensi, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	absensi, err := u.repo.GetByID(id, false)
	if err != nil {
		return nil, notFoundOr(err, "Absensi tidak ditemukan", "get absensi")
	}
	// pegawai dan tanggal tidak boleh dipindah lewat koreksi
	req.UserID = absensi.UserID
	req.Tanggal = absensi.Tanggal
	if err := u.applyAdmin(absensi, req); err != nil {
		return nil, err
	}
	absensi.User = nil
	audit := repository.Audit{ActorID: &actorID, IPAddress: ip, Keterangan: req.Alasan}
	if err := u.repo.Update(absensi, audit); err != nil {
		return nil, internal(err, "update absensi")
	}
	return absensi, nil
}

func (u *AbsensiUsecase) Delete(id uint, actorID uint, ip, alasan string) error {
	err := u.repo.SoftDelete(id, repository.Audit{ActorID: &actorID, IPAddress: ip, Keterangan: alasan})
	if err != nil {
		return notFoundOr(err, "Absensi tidak ditemukan", "delete absensi")
	}
	return nil
}

func (u *AbsensiUsecase) Restore(id uint, actorID uint, ip string) error {
	err := u.repo.Restore(id, repository.Audit{ActorID: &actorID, IPAddress: ip})
	if err != nil {
		return notFoundOr(err, "Absensi terhapus tidak ditemukan", "restore absensi")
	}
	return nil
}

func (u *AbsensiUsecase) ForceDelete(ctx context.Context, id uint, actorID uint, ip string) error {
	absensi, err := u.repo.GetByID(id, true)
	if err != nil {
		return notFoundOr(err, "Absensi tidak ditemukan", "get absensi")
	}
	if err := u.repo.ForceDelete(id, repository.Audit{ActorID: &actorID, IPAddress: ip}); err != nil {
		return notFoundOr(err, "Absensi tidak ditemukan", "force delete absensi")
	}
	u.removeFile(ctx, absensi.FilePendukung)
	return nil
}

func (u *AbsensiUsecase) BulkDelete(raw string, actorID uint, ip string) (int64, error) {
	ids, err := idlist.Parse(raw)
	if err != nil {
		return 0, apperror.Field("ids", err.Error())
	}
	n, err := u.repo.DeleteMany(ids, repository.Audit{ActorID: &actorID, IPAddress: ip, Keterangan: "hapus massal"})
	if err != nil {
		return 0, internal(err, "bulk delete absensi")
	}
	return n, nil
}

func (u *AbsensiUsecase) Logs(id uint) ([]model.LogAktivitasAbsensi, error) {
	if _, err := u.Get(id); err != nil {
		// log tetap bisa dilihat setelah hapus permanen
		if appErr, ok := apperror.As(err); !ok || appErr.Code != http.StatusNotFound {
			return nil, err
		}
	}
	logs, err := u.repo.Logs(id)
	if err != nil {
		return nil, internal(err, "logs absensi")
	}
	if len(logs) == 0 {
		return nil, apperror.NotFound("Absensi tidak ditemukan")
	}
	return logs, nil
}
