package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/pkg/errors"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/notify"
	"sdm-yayasan-backend/internal/pkg/storage"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

// MaxHariCuti membatasi panjang rentang satu pengajuan.
const MaxHariCuti = 92

type AjukanCutiRequest struct {
	JenisCuti      string `json:"jenis_cuti" form:"jenis_cuti" validate:"required,oneof=tahunan sakit melahirkan alasan_penting lainnya"`
	TanggalMulai   string `json:"tanggal_mulai" form:"tanggal_mulai" validate:"required,tanggal"`
	TanggalSelesai string `json:"tanggal_selesai" form:"tanggal_selesai" validate:"required,tanggal"`
	Alasan         string `json:"alasan" form:"alasan" validate:"required,notblank,max=1000"`
}

type ProsesCutiRequest struct {
	Catatan string `json:"catatan" form:"catatan" validate:"max=1000"`
}

type KuotaCuti struct {
	Tahun    int `json:"tahun"`
	Kuota    int `json:"kuota"`
	Terpakai int `json:"terpakai"`
	Sisa     int `json:"sisa"`
}

// tahap adalah satu baris tabel transisi persetujuan.
type tahap struct {
	role          string
	kolomApprover string
	kolomCatatan  string
	kolomWaktu    string
}

var tahapCuti = map[string]tahap{
	model.CutiMenungguKepalaSekolah: {model.RoleKepalaSekolah, "kepala_sekolah_id", "catatan_kepala_sekolah", "waktu_kepala_sekolah"},
	model.CutiMenungguHRD:           {model.RoleHRD, "hrd_id", "catatan_hrd", "waktu_hrd"},
	model.CutiMenungguDirektur:      {model.RoleDirektur, "direktur_id", "catatan_direktur", "waktu_direktur"},
}

// StatusBerikutnya mengembalikan status setelah tahap from disetujui.
// Hanya cuti tahunan yang melewati direktur.
func StatusBerikutnya(from, jenisCuti string) (string, bool) {
	switch from {
	case model.CutiMenungguKepalaSekolah:
		return model.CutiMenungguHRD, true
	case model.CutiMenungguHRD:
		if jenisCuti == model.JenisCutiTahunan {
			return model.CutiMenungguDirektur, true
		}
		return model.CutiDisetujui, true
	case model.CutiMenungguDirektur:
		return model.CutiDisetujui, true
	}
	return "", false
}

// StatusAwal menentukan tahap pertama. Pengajuan kepala sekolah langsung ke HRD.
func StatusAwal(pemohon *model.User) string {
	if pemohon.HasRole(model.RoleKepalaSekolah) {
		return model.CutiMenungguHRD
	}
	return model.CutiMenungguKepalaSekolah
}

type CutiUsecase struct {
	repo     repository.PengajuanCutiRepository
	users    repository.UserRepository
	kalender *Kalender
	store    storage.Storage
	events   notify.Publisher
	cfg      config.CutiConfig
	loc      *time.Location
	now      Clock
}

func NewCutiUsecase(
	repo repository.PengajuanCutiRepository,
	users repository.UserRepository,
	kalender *Kalender,
	store storage.Storage,
	events notify.Publisher,
	cfg config.CutiConfig,
	loc *time.Location,
	now Clock,
) *CutiUsecase {
	if now == nil {
		now = time.Now
	}
	if events == nil {
		events = notify.Discard{}
	}
	return &CutiUsecase{repo: repo, users: users, kalender: kalender, store: store, events: events, cfg: cfg, loc: loc, now: now}
}

func (u *CutiUsecase) Ajukan(ctx context.Context, userID uint, req AjukanCutiRequest, file *multipart.FileHeader) (*model.PengajuanCuti, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	mulai, _ := parseTanggal(req.TanggalMulai, u.loc)
	selesai, _ := parseTanggal(req.TanggalSelesai, u.loc)
	if selesai.Before(mulai) {
		return nil, apperror.Field("tanggal_selesai", "tanggal selesai tidak boleh sebelum tanggal mulai")
	}
	if selesai.Sub(mulai) > MaxHariCuti*24*time.Hour {
		return nil, apperror.Field("tanggal_selesai", fmt.Sprintf("rentang cuti maksimal %d hari", MaxHariCuti))
	}
	today := u.now().In(u.loc).Format(layoutTanggal)
	if req.JenisCuti != model.JenisCutiSakit && req.TanggalMulai < today {
		return nil, apperror.Field("tanggal_mulai", "tanggal mulai tidak boleh sebelum hari ini")
	}

	pemohon, err := u.users.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan", "find user")
	}

	hariKerja, err := u.kalender.HariKerja(pemohon, mulai, selesai)
	if err != nil {
		return nil, internal(err, "hari kerja")
	}
	if len(hariKerja) == 0 {
		return nil, apperror.Field("tanggal_mulai", "rentang tanggal tidak berisi hari kerja")
	}

	overlap, err := u.repo.HasOverlap(userID, req.TanggalMulai, req.TanggalSelesai)
	if err != nil {
		return nil, internal(err, "cek overlap cuti")
	}
	if overlap {
		return nil, apperror.Conflict("Sudah ada pengajuan cuti aktif pada rentang tanggal tersebut")
	}

	if req.JenisCuti == model.JenisCutiTahunan {
		kuota, err := u.Kuota(userID, mulai.Year())
		if err != nil {
			return nil, err
		}
		if len(hariKerja) > kuota.Sisa {
			return nil, apperror.Field("tanggal_selesai", fmt.Sprintf(
				"sisa kuota cuti tahunan %d hari, pengajuan membutuhkan %d hari", kuota.Sisa, len(hariKerja)))
		}
	}

	var key string
	if file != nil {
		key, err = storage.SaveUpload(ctx, u.store, "cuti", file, storage.DokumenTypes)
		if err != nil {
			return nil, internal(err, "save upload")
		}
	}

	cuti := &model.PengajuanCuti{
		UserID:         userID,
		JenisCuti:      req.JenisCuti,
		TanggalMulai:   req.TanggalMulai,
		TanggalSelesai: req.TanggalSelesai,
		JumlahHari:     len(hariKerja),
		Alasan:         req.Alasan,
		FilePendukung:  key,
		Status:         StatusAwal(pemohon),
	}
	if err := u.repo.Create(cuti); err != nil {
		if key != "" {
			_ = u.store.Delete(ctx, key)
		}
		return nil, internal(err, "create cuti")
	}

	u.events.Publish(notify.Event{Type: notify.CutiDiajukan, Cuti: cuti})
	return cuti, nil
}

func (u *CutiUsecase) Kuota(userID uint, tahun int) (*KuotaCuti, error) {
	if tahun == 0 {
		tahun = u.now().In(u.loc).Year()
	}
	terpakai, err := u.repo.SumHariTahunan(userID, tahun, 0)
	if err != nil {
		return nil, internal(err, "sum cuti tahunan")
	}
	sisa := u.cfg.KuotaTahunan - terpakai
	if sisa < 0 {
		sisa = 0
	}
	return &KuotaCuti{Tahun: tahun, Kuota: u.cfg.KuotaTahunan, Terpakai: terpakai, Sisa: sisa}, nil
}

func (u *CutiUsecase) Get(id uint) (*model.PengajuanCuti, error) {
	cuti, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Pengajuan cuti tidak ditemukan", "get cuti")
	}
	return cuti, nil
}

// Detail hanya boleh dilihat pemohon, approver, atau admin cuti.
func (u *CutiUsecase) Detail(id, userID uint, roles []string, bolehSemua bool) (*model.PengajuanCuti, error) {
	cuti, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	if cuti.UserID == userID || bolehSemua {
		return cuti, nil
	}
	for _, r := range roles {
		if r == model.RoleKepalaSekolah || r == model.RoleHRD || r == model.RoleDirektur {
			return cuti, nil
		}
	}
	return nil, apperror.Forbidden("Anda tidak berhak melihat pengajuan ini")
}

func (u *CutiUsecase) ListMilik(userID uint, filter repository.CutiFilter) ([]model.PengajuanCuti, int64, error) {
	filter.UserID = userID
	return u.List(filter)
}

func (u *CutiUsecase) List(filter repository.CutiFilter) ([]model.PengajuanCuti, int64, error) {
	list, total, err := u.repo.List(filter)
	if err != nil {
		return nil, 0, internal(err, "list cuti")
	}
	return list, total, nil
}

// rolesApprover membaca role approver dari database, bukan dari token atau session.
func (u *CutiUsecase) rolesApprover(approverID uint) ([]string, error) {
	approver, err := u.users.FindWithRoles(approverID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.Unauthorized("Akun tidak ditemukan")
		}
		return nil, internal(err, "find approver")
	}
	if !approver.IsActive {
		return nil, apperror.Unauthorized("Akun Anda tidak aktif. Hubungi admin.")
	}
	return approver.RoleNames(), nil
}

// Antrean mengembalikan pengajuan yang menunggu tahap milik role approver.
func (u *CutiUsecase) Antrean(approverID uint) ([]model.PengajuanCuti, error) {
	roles, err := u.rolesApprover(approverID)
	if err != nil {
		return nil, err
	}
	superAdmin := hasRole(roles, model.RoleSuperAdmin)
	var out []model.PengajuanCuti
	for _, status := range []string{model.CutiMenungguKepalaSekolah, model.CutiMenungguHRD, model.CutiMenungguDirektur} {
		if !superAdmin && !hasRole(roles, tahapCuti[status].role) {
			continue
		}
		list, err := u.repo.ListByStatus(status, approverID)
		if err != nil {
			return nil, internal(err, "antrean cuti")
		}
		out = append(out, list...)
	}
	return out, nil
}

func hasRole(roles []string, name string) bool {
	for _, r := range roles {
		if r == name {
			return true
		}
	}
	return false
}

func (u *CutiUsecase) Setujui(id, approverID uint, req ProsesCutiRequest) (*model.PengajuanCuti, error) {
	return u.proses(id, approverID, true, req)
}

func (u *CutiUsecase) Tolak(id, approverID uint, req ProsesCutiRequest) (*model.PengajuanCuti, error) {
	return u.proses(id, approverID, false, req)
}

// proses menjalankan satu langkah tabel transisi. Perubahan status memakai update bersyarat
// pada status asal, sehingga tahap tidak bisa dilompati, diulang, atau diproses bersamaan.
func (u *CutiUsecase) proses(id, approverID uint, setuju bool, req ProsesCutiRequest) (*model.PengajuanCuti, error) {
	req.Catatan = strings.TrimSpace(req.Catatan)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !setuju && req.Catatan == "" {
		return nil, apperror.Field("catatan", "catatan wajib diisi saat menolak")
	}

	roles, err := u.rolesApprover(approverID)
	if err != nil {
		return nil, err
	}
	cuti, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	from := cuti.Status
	t, menunggu := tahapCuti[from]
	if !menunggu {
		return nil, apperror.Conflict("Pengajuan sudah " + notify.StatusLabel(from))
	}
	if !hasRole(roles, t.role) && !hasRole(roles, model.RoleSuperAdmin) {
		return nil, apperror.Forbidden("Pengajuan ini " + notify.StatusLabel(from))
	}
	if cuti.UserID == approverID {
		return nil, apperror.Forbidden("Anda tidak dapat memproses pengajuan sendiri")
	}

	to := model.CutiDitolak
	if setuju {
		to, _ = StatusBerikutnya(from, cuti.JenisCuti)
	}

	now := u.now()
	changes := map[string]interface{}{
		"status":        to,
		t.kolomApprover: approverID,
		t.kolomCatatan:  req.Catatan,
		t.kolomWaktu:    now,
	}

	if to == model.CutiDisetujui {
		err = u.setujuiAkhir(cuti, from, changes, approverID)
	} else {
		err = u.repo.Transition(id, from, changes)
	}
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperror.Conflict("Pengajuan sudah diproses oleh pihak lain")
		}
		return nil, internal(err, "proses cuti")
	}

	updated, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	u.events.Publish(notify.Event{Type: notify.CutiStatusBerubah, Cuti: updated, OldStatus: from})
	return updated, nil
}

// setujuiAkhir membuat absensi "cuti" untuk setiap hari kerja di rentang pengajuan
// dalam transaksi yang sama dengan perubahan status.
func (u *CutiUsecase) setujuiAkhir(cuti *model.PengajuanCuti, from string, changes map[string]interface{}, approverID uint) error {
	mulai, err := parseTanggal(cuti.TanggalMulai, u.loc)
	if err != nil {
		return err
	}
	selesai, err := parseTanggal(cuti.TanggalSelesai, u.loc)
	if err != nil {
		return err
	}
	pemohon := cuti.User
	if pemohon == nil {
		if pemohon, err = u.users.FindByID(cuti.UserID); err != nil {
			return err
		}
	}
	hariKerja, err := u.kalender.HariKerja(pemohon, mulai, selesai)
	if err != nil {
		return err
	}

	rows := make([]model.Absensi, 0, len(hariKerja))
	for _, tanggal := range hariKerja {
		rows = append(rows, model.Absensi{
			UserID:          cuti.UserID,
			Tanggal:         tanggal,
			Status:          model.StatusCuti,
			Keterangan:      fmt.Sprintf("Cuti %s", cuti.JenisCuti),
			PengajuanCutiID: uintPtr(cuti.ID),
		})
	}
	audit := repository.Audit{ActorID: &approverID, Keterangan: fmt.Sprintf("Persetujuan cuti #%d", cuti.ID)}
	_, err = u.repo.Approve(cuti.ID, from, changes, rows, audit)
	return err
}

// Batalkan hanya bisa dilakukan pemohon selama pengajuan masih menunggu.
func (u *CutiUsecase) Batalkan(id, userID uint) (*model.PengajuanCuti, error) {
	cuti, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	if cuti.UserID != userID {
		return nil, apperror.Forbidden("Anda hanya dapat membatalkan pengajuan sendiri")
	}
	if !cuti.Menunggu() {
		return nil, apperror.Conflict("Pengajuan sudah " + notify.StatusLabel(cuti.Status) + " dan tidak dapat dibatalkan")
	}
	from := cuti.Status
	if err := u.repo.Transition(id, from, map[string]interface{}{"status": model.CutiDibatalkan}); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperror.Conflict("Pengajuan sudah diproses oleh pihak lain")
		}
		return nil, internal(err, "batalkan cuti")
	}
	cuti.Status = model.CutiDibatalkan
	u.events.Publish(notify.Event{Type: notify.CutiStatusBerubah, Cuti: cuti, OldStatus: from})
	return cuti, nil
}

func (u *CutiUsecase) FileURL(key string) string {
	if key == "" {
		return ""
	}
	return u.store.URL(key)
}
