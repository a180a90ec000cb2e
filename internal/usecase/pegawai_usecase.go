package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/export"
	"sdm-yayasan-backend/internal/pkg/idlist"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

type PegawaiRequest struct {
	Nama              string `json:"nama" validate:"required,notblank,max=150"`
	Email             string `json:"email" validate:"required,email,max=150"`
	Password          string `json:"password" validate:"omitempty,min=8"`
	IsActive          *bool  `json:"is_active"`
	RoleIDs           []uint `json:"role_ids" validate:"omitempty,dive,gt=0"`
	NIK               string `json:"nik" validate:"required,len=16,numeric"`
	TempatLahir       string `json:"tempat_lahir" validate:"omitempty,max=100"`
	TanggalLahir      string `json:"tanggal_lahir" validate:"omitempty,tanggal"`
	JenisKelamin      string `json:"jenis_kelamin" validate:"omitempty,oneof=L P"`
	Agama             string `json:"agama" validate:"omitempty,max=20"`
	Alamat            string `json:"alamat"`
	NoHP              string `json:"no_hp" validate:"omitempty,max=20,numeric"`
	NIP               string `json:"nip" validate:"required,notblank,max=30"`
	DepartemenID      *uint  `json:"departemen_id"`
	JabatanID         *uint  `json:"jabatan_id"`
	TempatKerjaID     *uint  `json:"tempat_kerja_id"`
	StatusKepegawaian string `json:"status_kepegawaian" validate:"omitempty,oneof=tetap kontrak honorer"`
	TanggalMasuk      string `json:"tanggal_masuk" validate:"omitempty,tanggal"`
}

type PegawaiUsecase struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	departemen  repository.DepartemenRepository
	jabatan     repository.JabatanRepository
	tempatKerja repository.TempatKerjaRepository
	permissions *PermissionService
}

func NewPegawaiUsecase(
	users repository.UserRepository,
	roles repository.RoleRepository,
	departemen repository.DepartemenRepository,
	jabatan repository.JabatanRepository,
	tempatKerja repository.TempatKerjaRepository,
	permissions *PermissionService,
) *PegawaiUsecase {
	return &PegawaiUsecase{
		users:       users,
		roles:       roles,
		departemen:  departemen,
		jabatan:     jabatan,
		tempatKerja: tempatKerja,
		permissions: permissions,
	}
}

func (u *PegawaiUsecase) List(filter repository.UserFilter) ([]model.User, int64, error) {
	users, total, err := u.users.List(filter)
	if err != nil {
		return nil, 0, internal(err, "list pegawai")
	}
	return users, total, nil
}

func (u *PegawaiUsecase) Get(id uint) (*model.User, error) {
	user, err := u.users.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Pegawai tidak ditemukan", "find pegawai")
	}
	return user, nil
}

// Create menyimpan user, kedua profil, dan role dalam satu transaksi.
func (u *PegawaiUsecase) Create(req PegawaiRequest) (*model.User, error) {
	fields := validation.Fields(req)
	if fields == nil {
		fields = map[string]string{}
	}
	if req.Password == "" {
		fields["password"] = "password wajib diisi"
	}
	if err := u.checkReferences(req, 0, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal(err, "hash password")
	}
	user := &model.User{
		Password:         string(hashed),
		IsActive:         true,
		ProfilePribadi:   &model.ProfilePribadi{},
		ProfilePekerjaan: &model.ProfilePekerjaan{},
	}
	applyPegawai(user, req)

	if err := u.users.CreateWithProfiles(user, req.RoleIDs); err != nil {
		return nil, u.mapWriteError(err, req, 0)
	}
	return u.Get(user.ID)
}

func (u *PegawaiUsecase) Update(ctx context.Context, id uint, req PegawaiRequest) (*model.User, error) {
	user, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	fields := validation.Fields(req)
	if fields == nil {
		fields = map[string]string{}
	}
	if err := u.checkReferences(req, id, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, internal(err, "hash password")
		}
		user.Password = string(hashed)
	}
	if user.ProfilePribadi == nil {
		user.ProfilePribadi = &model.ProfilePribadi{}
	}
	if user.ProfilePekerjaan == nil {
		user.ProfilePekerjaan = &model.ProfilePekerjaan{}
	}
	applyPegawai(user, req)
	// relasi lama dilepas agar Save tidak menulis ulang data master
	user.ProfilePekerjaan.Departemen = nil
	user.ProfilePekerjaan.Jabatan = nil
	user.ProfilePekerjaan.TempatKerja = nil

	syncRoles := req.RoleIDs != nil
	if err := u.users.UpdateWithProfiles(user, req.RoleIDs, syncRoles); err != nil {
		return nil, u.mapWriteError(err, req, id)
	}
	// status aktif ikut menentukan akses, jadi cache dikosongkan juga saat berubah
	if syncRoles || req.IsActive != nil {
		u.permissions.Invalidate(ctx)
	}
	return u.Get(id)
}

func applyPegawai(user *model.User, req PegawaiRequest) {
	user.Nama = req.Nama
	user.Email = req.Email
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	p := user.ProfilePribadi
	p.NIK = req.NIK
	p.TempatLahir = req.TempatLahir
	p.TanggalLahir = req.TanggalLahir
	p.JenisKelamin = req.JenisKelamin
	p.Agama = req.Agama
	p.Alamat = req.Alamat
	p.NoHP = req.NoHP

	k := user.ProfilePekerjaan
	k.NIP = req.NIP
	k.DepartemenID = req.DepartemenID
	k.JabatanID = req.JabatanID
	k.TempatKerjaID = req.TempatKerjaID
	k.StatusKepegawaian = req.StatusKepegawaian
	k.TanggalMasuk = req.TanggalMasuk
}

// checkReferences mengisi fields dengan pesan untuk data unik yang sudah dipakai
// dan relasi master data yang tidak ada.
func (u *PegawaiUsecase) checkReferences(req PegawaiRequest, exceptUserID uint, fields map[string]string) error {
	if _, bad := fields["email"]; !bad && req.Email != "" {
		taken, err := u.users.EmailTaken(req.Email, exceptUserID)
		if err != nil {
			return internal(err, "check email")
		}
		if taken {
			fields["email"] = "email sudah digunakan"
		}
	}
	if _, bad := fields["nik"]; !bad && req.NIK != "" {
		taken, err := u.users.NIKTaken(req.NIK, exceptUserID)
		if err != nil {
			return internal(err, "check nik")
		}
		if taken {
			fields["nik"] = "NIK sudah terdaftar"
		}
	}
	if _, bad := fields["nip"]; !bad && req.NIP != "" {
		taken, err := u.users.NIPTaken(req.NIP, exceptUserID)
		if err != nil {
			return internal(err, "check nip")
		}
		if taken {
			fields["nip"] = "NIP sudah terdaftar"
		}
	}

	if req.DepartemenID != nil {
		if _, err := u.departemen.GetByID(*req.DepartemenID); err != nil {
			if !repository.IsNotFound(err) {
				return internal(err, "find departemen")
			}
			fields["departemen_id"] = "departemen tidak ditemukan"
		}
	}
	if req.JabatanID != nil {
		if _, err := u.jabatan.GetByID(*req.JabatanID); err != nil {
			if !repository.IsNotFound(err) {
				return internal(err, "find jabatan")
			}
			fields["jabatan_id"] = "jabatan tidak ditemukan"
		}
	}
	if req.TempatKerjaID != nil {
		if _, err := u.tempatKerja.GetByID(*req.TempatKerjaID); err != nil {
			if !repository.IsNotFound(err) {
				return internal(err, "find tempat kerja")
			}
			fields["tempat_kerja_id"] = "tempat kerja tidak ditemukan"
		}
	}
	if len(req.RoleIDs) > 0 {
		roles, err := u.roles.FindByIDs(req.RoleIDs)
		if err != nil {
			return internal(err, "find roles")
		}
		if len(roles) != len(uniqueIDs(req.RoleIDs)) {
			fields["role_ids"] = "role tidak ditemukan"
		}
	}
	return nil
}

// mapWriteError menerjemahkan pelanggaran unique index dari insert yang bersamaan
// menjadi error validasi per field.
func (u *PegawaiUsecase) mapWriteError(err error, req PegawaiRequest, exceptUserID uint) error {
	if !repository.IsDuplicateKey(err) {
		return internal(err, "save pegawai")
	}
	fields := map[string]string{}
	if cerr := u.checkReferences(req, exceptUserID, fields); cerr != nil {
		return cerr
	}
	if len(fields) == 0 {
		fields["email"] = "data pegawai sudah terdaftar"
	}
	return apperror.Validation(fields)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (u *PegawaiUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.users.Delete(id); err != nil {
		return notFoundOr(err, "Pegawai tidak ditemukan", "delete pegawai")
	}
	u.permissions.Invalidate(ctx)
	return nil
}

// BulkDelete menerima id dipisah koma dari form pilihan massal.
func (u *PegawaiUsecase) BulkDelete(ctx context.Context, raw string, actorID uint) (int64, error) {
	ids, err := idlist.Parse(raw)
	if err != nil {
		return 0, apperror.Field("ids", err.Error())
	}
	for _, id := range ids {
		if id == actorID {
			return 0, apperror.Field("ids", "tidak dapat menghapus akun sendiri")
		}
	}
	n, err := u.users.DeleteMany(ids)
	if err != nil {
		return 0, internal(err, "bulk delete pegawai")
	}
	u.permissions.Invalidate(ctx)
	return n, nil
}

func (u *PegawaiUsecase) SyncRoles(ctx context.Context, id uint, roleIDs []uint) (*model.User, error) {
	if _, err := u.Get(id); err != nil {
		return nil, err
	}
	roles, err := u.roles.FindByIDs(roleIDs)
	if err != nil {
		return nil, internal(err, "find roles")
	}
	if len(roles) != len(uniqueIDs(roleIDs)) {
		return nil, apperror.Field("role_ids", "role tidak ditemukan")
	}
	if err := u.users.SyncRoles(id, roleIDs); err != nil {
		return nil, internal(err, "sync roles")
	}
	u.permissions.Invalidate(ctx)
	return u.Get(id)
}

func (u *PegawaiUsecase) ResetDevices(id uint) error {
	if _, err := u.Get(id); err != nil {
		return err
	}
	if err := u.users.ResetDevices(id); err != nil {
		return internal(err, "reset devices")
	}
	return nil
}

// Export membuat workbook daftar pegawai sesuai filter (tanpa paging).
func (u *PegawaiUsecase) Export(filter repository.UserFilter) (*bytes.Buffer, error) {
	filter.Pagination = repository.Pagination{Page: 1, PerPage: 100}
	var rows [][]interface{}
	for {
		users, total, err := u.users.List(filter)
		if err != nil {
			return nil, internal(err, "list pegawai")
		}
		for _, p := range users {
			rows = append(rows, pegawaiRow(len(rows)+1, p))
		}
		if int64(filter.Page*filter.PerPage) >= total || len(users) == 0 {
			break
		}
		filter.Page++
	}

	buf, err := export.Excel(export.Sheet{
		Name: "Pegawai",
		Headers: []string{
			"No", "Nama", "Email", "NIK", "NIP", "Departemen", "Jabatan", "Tempat Kerja",
			"Status Kepegawaian", "Tanggal Masuk", "Role", "Aktif",
		},
		Rows: rows,
	})
	if err != nil {
		return nil, internal(err, "export pegawai")
	}
	return buf, nil
}

func pegawaiRow(no int, p model.User) []interface{} {
	var nik, nip, dep, jab, tempat, status, masuk string
	if p.ProfilePribadi != nil {
		nik = p.ProfilePribadi.NIK
	}
	if k := p.ProfilePekerjaan; k != nil {
		nip = k.NIP
		status = k.StatusKepegawaian
		masuk = k.TanggalMasuk
		if k.Departemen != nil {
			dep = k.Departemen.Nama
		}
		if k.Jabatan != nil {
			jab = k.Jabatan.Nama
		}
		if k.TempatKerja != nil {
			tempat = k.TempatKerja.Nama
		}
	}
	aktif := "Tidak"
	if p.IsActive {
		aktif = "Ya"
	}
	return []interface{}{no, p.Nama, p.Email, nik, nip, dep, jab, tempat, status, masuk, strings.Join(p.RoleNames(), ", "), aktif}
}

// QRCode membuat PNG berisi NIP untuk kartu pegawai.
func (u *PegawaiUsecase) QRCode(id uint, size int) ([]byte, string, error) {
	user, err := u.Get(id)
	if err != nil {
		return nil, "", err
	}
	if user.ProfilePekerjaan == nil || user.ProfilePekerjaan.NIP == "" {
		return nil, "", apperror.BadRequest("Pegawai belum memiliki NIP")
	}
	if size <= 0 || size > 1024 {
		size = 256
	}
	png, err := export.QRCode(user.ProfilePekerjaan.NIP, size)
	if err != nil {
		return nil, "", internal(err, "qrcode")
	}
	return png, fmt.Sprintf("qr-%s.png", user.ProfilePekerjaan.NIP), nil
}
