package usecase

import (
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/geo"
	"sdm-yayasan-backend/internal/pkg/idlist"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

type DepartemenRequest struct {
	Nama       string `json:"nama" form:"nama" validate:"required,notblank,max=100"`
	Keterangan string `json:"keterangan" form:"keterangan" validate:"max=255"`
}

type JabatanRequest struct {
	Nama         string `json:"nama" form:"nama" validate:"required,notblank,max=100"`
	DepartemenID *uint  `json:"departemen_id" form:"departemen_id"`
}

type TempatKerjaRequest struct {
	Nama        string   `json:"nama" form:"nama" validate:"required,notblank,max=150"`
	Alamat      string   `json:"alamat" form:"alamat" validate:"max=500"`
	Latitude    *float64 `json:"latitude" form:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude" validate:"required,longitude"`
	RadiusMeter float64  `json:"radius_meter" form:"radius_meter" validate:"omitempty,gt=0,lte=100000"`
}

type JamKerjaRequest struct {
	RoleID    uint   `json:"role_id" form:"role_id" validate:"required"`
	Hari      *int   `json:"hari" form:"hari" validate:"required,min=0,max=6"`
	JamMasuk  string `json:"jam_masuk" form:"jam_masuk" validate:"required_without=IsLibur,jam"`
	JamPulang string `json:"jam_pulang" form:"jam_pulang" validate:"required_without=IsLibur,jam"`
	IsLibur   bool   `json:"is_libur" form:"is_libur"`
}

type HariLiburRequest struct {
	Tanggal    string `json:"tanggal" form:"tanggal" validate:"required,tanggal"`
	Keterangan string `json:"keterangan" form:"keterangan" validate:"required,notblank,max=255"`
}

type TahunAjaranRequest struct {
	Nama           string `json:"nama" form:"nama" validate:"required,notblank,max=20"`
	TanggalMulai   string `json:"tanggal_mulai" form:"tanggal_mulai" validate:"required,tanggal"`
	TanggalSelesai string `json:"tanggal_selesai" form:"tanggal_selesai" validate:"required,tanggal"`
	IsAktif        bool   `json:"is_aktif" form:"is_aktif"`
}

// MasterDataUsecase mengelola data referensi: departemen, jabatan, tempat kerja,
// jam kerja, hari libur dan tahun ajaran.
type MasterDataUsecase struct {
	departemen  repository.DepartemenRepository
	jabatan     repository.JabatanRepository
	tempatKerja repository.TempatKerjaRepository
	jamKerja    repository.JamKerjaRepository
	hariLibur   repository.HariLiburRepository
	tahunAjaran repository.TahunAjaranRepository
	roles       repository.RoleRepository
}

func NewMasterDataUsecase(
	departemen repository.DepartemenRepository,
	jabatan repository.JabatanRepository,
	tempatKerja repository.TempatKerjaRepository,
	jamKerja repository.JamKerjaRepository,
	hariLibur repository.HariLiburRepository,
	tahunAjaran repository.TahunAjaranRepository,
	roles repository.RoleRepository,
) *MasterDataUsecase {
	return &MasterDataUsecase{
		departemen:  departemen,
		jabatan:     jabatan,
		tempatKerja: tempatKerja,
		jamKerja:    jamKerja,
		hariLibur:   hariLibur,
		tahunAjaran: tahunAjaran,
		roles:       roles,
	}
}

// simpanMaster memetakan pelanggaran unique index ke error field.
func simpanMaster(err error, field, pesan, op string) error {
	if err == nil {
		return nil
	}
	if repository.IsDuplicateKey(err) {
		return apperror.Field(field, pesan)
	}
	return notFoundOr(err, "Data tidak ditemukan", op)
}

func hapusMassal(raw string, op string, del func([]uint) (int64, error)) (int64, error) {
	ids, err := idlist.Parse(raw)
	if err != nil {
		return 0, apperror.Field("ids", err.Error())
	}
	n, err := del(ids)
	if err != nil {
		return 0, internal(err, op)
	}
	return n, nil
}

// ---------- Departemen ----------

func (u *MasterDataUsecase) ListDepartemen(search string) ([]model.Departemen, error) {
	list, err := u.departemen.GetAll(search)
	if err != nil {
		return nil, internal(err, "list departemen")
	}
	return list, nil
}

func (u *MasterDataUsecase) GetDepartemen(id uint) (*model.Departemen, error) {
	d, err := u.departemen.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Departemen tidak ditemukan", "get departemen")
	}
	return d, nil
}

func (u *MasterDataUsecase) CreateDepartemen(req DepartemenRequest) (*model.Departemen, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	d := &model.Departemen{Nama: req.Nama, Keterangan: req.Keterangan}
	if err := u.departemen.Create(d); err != nil {
		return nil, simpanMaster(err, "nama", "nama departemen sudah digunakan", "create departemen")
	}
	return d, nil
}

func (u *MasterDataUsecase) UpdateDepartemen(id uint, req DepartemenRequest) (*model.Departemen, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	d, err := u.GetDepartemen(id)
	if err != nil {
		return nil, err
	}
	d.Nama = req.Nama
	d.Keterangan = req.Keterangan
	if err := u.departemen.Update(d); err != nil {
		return nil, simpanMaster(err, "nama", "nama departemen sudah digunakan", "update departemen")
	}
	return d, nil
}

func (u *MasterDataUsecase) DeleteDepartemen(id uint) error {
	if err := u.departemen.Delete(id); err != nil {
		return notFoundOr(err, "Departemen tidak ditemukan", "delete departemen")
	}
	return nil
}

func (u *MasterDataUsecase) BulkDeleteDepartemen(raw string) (int64, error) {
	return hapusMassal(raw, "bulk delete departemen", u.departemen.DeleteMany)
}

// ---------- Jabatan ----------

func (u *MasterDataUsecase) ListJabatan(search string, departemenID uint) ([]model.Jabatan, error) {
	list, err := u.jabatan.GetAll(search, departemenID)
	if err != nil {
		return nil, internal(err, "list jabatan")
	}
	return list, nil
}

func (u *MasterDataUsecase) GetJabatan(id uint) (*model.Jabatan, error) {
	j, err := u.jabatan.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Jabatan tidak ditemukan", "get jabatan")
	}
	return j, nil
}

func (u *MasterDataUsecase) checkDepartemen(id *uint) error {
	if id == nil || *id == 0 {
		return nil
	}
	if _, err := u.departemen.GetByID(*id); err != nil {
		if repository.IsNotFound(err) {
			return apperror.Field("departemen_id", "departemen tidak ditemukan")
		}
		return internal(err, "find departemen")
	}
	return nil
}

func (u *MasterDataUsecase) CreateJabatan(req JabatanRequest) (*model.Jabatan, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := u.checkDepartemen(req.DepartemenID); err != nil {
		return nil, err
	}
	j := &model.Jabatan{Nama: req.Nama, DepartemenID: nonZero(req.DepartemenID)}
	if err := u.jabatan.Create(j); err != nil {
		return nil, simpanMaster(err, "nama", "nama jabatan sudah digunakan", "create jabatan")
	}
	return j, nil
}

func (u *MasterDataUsecase) UpdateJabatan(id uint, req JabatanRequest) (*model.Jabatan, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := u.checkDepartemen(req.DepartemenID); err != nil {
		return nil, err
	}
	j, err := u.GetJabatan(id)
	if err != nil {
		return nil, err
	}
	j.Nama = req.Nama
	j.DepartemenID = nonZero(req.DepartemenID)
	j.Departemen = nil
	if err := u.jabatan.Update(j); err != nil {
		return nil, simpanMaster(err, "nama", "nama jabatan sudah digunakan", "update jabatan")
	}
	return j, nil
}

func (u *MasterDataUsecase) DeleteJabatan(id uint) error {
	if err := u.jabatan.Delete(id); err != nil {
		return notFoundOr(err, "Jabatan tidak ditemukan", "delete jabatan")
	}
	return nil
}

func (u *MasterDataUsecase) BulkDeleteJabatan(raw string) (int64, error) {
	return hapusMassal(raw, "bulk delete jabatan", u.jabatan.DeleteMany)
}

// ---------- Tempat Kerja ----------

func (u *MasterDataUsecase) ListTempatKerja(search string) ([]model.TempatKerja, error) {
	list, err := u.tempatKerja.GetAll(search)
	if err != nil {
		return nil, internal(err, "list tempat kerja")
	}
	return list, nil
}

func (u *MasterDataUsecase) GetTempatKerja(id uint) (*model.TempatKerja, error) {
	t, err := u.tempatKerja.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Tempat kerja tidak ditemukan", "get tempat kerja")
	}
	return t, nil
}

func applyTempatKerja(t *model.TempatKerja, req TempatKerjaRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if !geo.ValidCoordinate(*req.Latitude, *req.Longitude) {
		return apperror.Field("latitude", "koordinat tidak valid")
	}
	t.Nama = req.Nama
	t.Alamat = req.Alamat
	t.Latitude = *req.Latitude
	t.Longitude = *req.Longitude
	t.RadiusMeter = req.RadiusMeter
	if t.RadiusMeter == 0 {
		t.RadiusMeter = 500
	}
	return nil
}

func (u *MasterDataUsecase) CreateTempatKerja(req TempatKerjaRequest) (*model.TempatKerja, error) {
	t := &model.TempatKerja{}
	if err := applyTempatKerja(t, req); err != nil {
		return nil, err
	}
	if err := u.tempatKerja.Create(t); err != nil {
		return nil, simpanMaster(err, "nama", "nama tempat kerja sudah digunakan", "create tempat kerja")
	}
	return t, nil
}

func (u *MasterDataUsecase) UpdateTempatKerja(id uint, req TempatKerjaRequest) (*model.TempatKerja, error) {
	t, err := u.GetTempatKerja(id)
	if err != nil {
		return nil, err
	}
	if err := applyTempatKerja(t, req); err != nil {
		return nil, err
	}
	if err := u.tempatKerja.Update(t); err != nil {
		return nil, simpanMaster(err, "nama", "nama tempat kerja sudah digunakan", "update tempat kerja")
	}
	return t, nil
}

func (u *MasterDataUsecase) DeleteTempatKerja(id uint) error {
	if err := u.tempatKerja.Delete(id); err != nil {
		return notFoundOr(err, "Tempat kerja tidak ditemukan", "delete tempat kerja")
	}
	return nil
}

func (u *MasterDataUsecase) BulkDeleteTempatKerja(raw string) (int64, error) {
	return hapusMassal(raw, "bulk delete tempat kerja", u.tempatKerja.DeleteMany)
}

// ---------- Jam Kerja ----------

func (u *MasterDataUsecase) ListJamKerja(roleID uint) ([]model.JamKerja, error) {
	list, err := u.jamKerja.GetAll(roleID)
	if err != nil {
		return nil, internal(err, "list jam kerja")
	}
	return list, nil
}

func (u *MasterDataUsecase) GetJamKerja(id uint) (*model.JamKerja, error) {
	jk, err := u.jamKerja.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Jam kerja tidak ditemukan", "get jam kerja")
	}
	return jk, nil
}

func (u *MasterDataUsecase) applyJamKerja(jk *model.JamKerja, req JamKerjaRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if !req.IsLibur && req.JamMasuk >= req.JamPulang {
		return apperror.Field("jam_pulang", "jam pulang harus setelah jam masuk")
	}
	if _, err := u.roles.GetByID(req.RoleID); err != nil {
		if repository.IsNotFound(err) {
			return apperror.Field("role_id", "role tidak ditemukan")
		}
		return internal(err, "find role")
	}
	jk.RoleID = req.RoleID
	jk.Hari = *req.Hari
	jk.IsLibur = req.IsLibur
	jk.JamMasuk = req.JamMasuk
	jk.JamPulang = req.JamPulang
	if req.IsLibur {
		jk.JamMasuk, jk.JamPulang = "", ""
	}
	return nil
}

// SimpanJamKerja membuat jadwal baru atau menimpa jadwal role pada hari yang sama.
func (u *MasterDataUsecase) SimpanJamKerja(req JamKerjaRequest) (*model.JamKerja, error) {
	jk := &model.JamKerja{}
	if err := u.applyJamKerja(jk, req); err != nil {
		return nil, err
	}
	if err := u.jamKerja.Upsert(jk); err != nil {
		return nil, internal(err, "upsert jam kerja")
	}
	return jk, nil
}

func (u *MasterDataUsecase) UpdateJamKerja(id uint, req JamKerjaRequest) (*model.JamKerja, error) {
	jk, err := u.GetJamKerja(id)
	if err != nil {
		return nil, err
	}
	if err := u.applyJamKerja(jk, req); err != nil {
		return nil, err
	}
	jk.Role = nil
	if err := u.jamKerja.Update(jk); err != nil {
		return nil, simpanMaster(err, "hari", "jadwal role untuk hari ini sudah ada", "update jam kerja")
	}
	return jk, nil
}

func (u *MasterDataUsecase) DeleteJamKerja(id uint) error {
	if err := u.jamKerja.Delete(id); err != nil {
		return notFoundOr(err, "Jam kerja tidak ditemukan", "delete jam kerja")
	}
	return nil
}

func (u *MasterDataUsecase) BulkDeleteJamKerja(raw string) (int64, error) {
	return hapusMassal(raw, "bulk delete jam kerja", u.jamKerja.DeleteMany)
}

// ---------- Hari Libur ----------

func (u *MasterDataUsecase) ListHariLibur(tahun int) ([]model.HariLibur, error) {
	list, err := u.hariLibur.GetAll(tahun)
	if err != nil {
		return nil, internal(err, "list hari libur")
	}
	return list, nil
}

func (u *MasterDataUsecase) GetHariLibur(id uint) (*model.HariLibur, error) {
	h, err := u.hariLibur.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Hari libur tidak ditemukan", "get hari libur")
	}
	return h, nil
}

func (u *MasterDataUsecase) CreateHariLibur(req HariLiburRequest) (*model.HariLibur, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	h := &model.HariLibur{Tanggal: req.Tanggal, Keterangan: req.Keterangan}
	if err := u.hariLibur.Create(h); err != nil {
		return nil, simpanMaster(err, "tanggal", "tanggal sudah terdaftar sebagai hari libur", "create hari libur")
	}
	return h, nil
}

func (u *MasterDataUsecase) UpdateHariLibur(id uint, req HariLiburRequest) (*model.HariLibur, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	h, err := u.GetHariLibur(id)
	if err != nil {
		return nil, err
	}
	h.Tanggal = req.Tanggal
	h.Keterangan = req.Keterangan
	if err := u.hariLibur.Update(h); err != nil {
		return nil, simpanMaster(err, "tanggal", "tanggal sudah terdaftar sebagai hari libur", "update hari libur")
	}
	return h, nil
}

func (u *MasterDataUsecase) DeleteHariLibur(id uint) error {
	if err := u.hariLibur.Delete(id); err != nil {
		return notFoundOr(err, "Hari libur tidak ditemukan", "delete hari libur")
	}
	return nil
}

func (u *MasterDataUsecase) BulkDeleteHariLibur(raw string) (int64, error) {
	return hapusMassal(raw, "bulk delete hari libur", u.hariLibur.DeleteMany)
}

// ---------- Tahun Ajaran ----------

func (u *MasterDataUsecase) ListTahunAjaran() ([]model.TahunAjaran, error) {
	list, err := u.tahunAjaran.GetAll()
	if err != nil {
		return nil, internal(err, "list tahun ajaran")
	}
	return list, nil
}

func (u *MasterDataUsecase) GetTahunAjaran(id uint) (*model.TahunAjaran, error) {
	ta, err := u.tahunAjaran.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Tahun ajaran tidak ditemukan", "get tahun ajaran")
	}
	return ta, nil
}

func validTahunAjaran(req TahunAjaranRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if req.TanggalSelesai <= req.TanggalMulai {
		return apperror.Field("tanggal_selesai", "tanggal selesai harus setelah tanggal mulai")
	}
	return nil
}

func (u *MasterDataUsecase) CreateTahunAjaran(req TahunAjaranRequest) (*model.TahunAjaran, error) {
	if err := validTahunAjaran(req); err != nil {
		return nil, err
	}
	ta := &model.TahunAjaran{
		Nama:           req.Nama,
		TanggalMulai:   req.TanggalMulai,
		TanggalSelesai: req.TanggalSelesai,
		IsAktif:        req.IsAktif,
	}
	if err := u.tahunAjaran.Create(ta); err != nil {
		return nil, simpanMaster(err, "nama", "tahun ajaran sudah ada", "create tahun ajaran")
	}
	return ta, nil
}

// UpdateTahunAjaran tidak mengubah status aktif. Gunakan AktifkanTahunAjaran.
func (u *MasterDataUsecase) UpdateTahunAjaran(id uint, req TahunAjaranRequest) (*model.TahunAjaran, error) {
	if err := validTahunAjaran(req); err != nil {
		return nil, err
	}
	ta, err := u.GetTahunAjaran(id)
	if err != nil {
		return nil, err
	}
	ta.Nama = req.Nama
	ta.TanggalMulai = req.TanggalMulai
	ta.TanggalSelesai = req.TanggalSelesai
	if err := u.tahunAjaran.Update(ta); err != nil {
		return nil, simpanMaster(err, "nama", "tahun ajaran sudah ada", "update tahun ajaran")
	}
	if req.IsAktif && !ta.IsAktif {
		return u.AktifkanTahunAjaran(id)
	}
	return ta, nil
}

func (u *MasterDataUsecase) AktifkanTahunAjaran(id uint) (*model.TahunAjaran, error) {
	if err := u.tahunAjaran.Activate(id); err != nil {
		return nil, notFoundOr(err, "Tahun ajaran tidak ditemukan", "activate tahun ajaran")
	}
	return u.GetTahunAjaran(id)
}

func (u *MasterDataUsecase) DeleteTahunAjaran(id uint) error {
	if err := u.tahunAjaran.Delete(id); err != nil {
		return notFoundOr(err, "Tahun ajaran tidak ditemukan", "delete tahun ajaran")
	}
	return nil
}

func (u *MasterDataUsecase) BulkDeleteTahunAjaran(raw string) (int64, error) {
	return hapusMassal(raw, "bulk delete tahun ajaran", u.tahunAjaran.DeleteMany)
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}
