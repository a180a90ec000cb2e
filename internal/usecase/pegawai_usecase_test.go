package usecase

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/cache"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/testutil"
)

func newPegawaiUsecase(db *gorm.DB) *PegawaiUsecase {
	users := repository.NewUserRepository(db)
	return NewPegawaiUsecase(
		users,
		repository.NewRoleRepository(db),
		repository.NewDepartemenRepository(db),
		repository.NewJabatanRepository(db),
		repository.NewTempatKerjaRepository(db),
		NewPermissionService(users, cache.NewMemory()),
	)
}

func pegawaiBaru(email, nik, nip string) PegawaiRequest {
	return PegawaiRequest{
		Nama:              "Pegawai " + nip,
		Email:             email,
		Password:          "rahasia123",
		NIK:               nik,
		NIP:               nip,
		JenisKelamin:      "P",
		StatusKepegawaian: model.StatusPegawaiKontrak,
		TanggalMasuk:      "2024-07-15",
	}
}

func TestPegawai_Create(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newPegawaiUsecase(db)
	guru := testutil.CreateRole(t, db, model.RoleGuru)
	dep := model.Departemen{Nama: "SD"}
	require.NoError(t, db.Create(&dep).Error)

	req := pegawaiBaru("ani@yayasan.sch.id", "3201010101010001", "NIP-001")
	req.RoleIDs = []uint{guru.ID, guru.ID}
	req.DepartemenID = &dep.ID

	user, err := uc.Create(req)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{model.RoleGuru}, user.RoleNames())
	require.NotNil(t, user.ProfilePekerjaan.Departemen)
	assert.Equal(t, "SD", user.ProfilePekerjaan.Departemen.Nama)
	assert.NotEqual(t, "rahasia123", user.Password)
}

func TestPegawai_CreateFieldErrors(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newPegawaiUsecase(db)
	testutil.CreateUser(t, db, "Ada", "ada@yayasan.sch.id", "3201010101010001", "NIP-001")

	missing := uint(999)
	tests := []struct {
		name   string
		mutate func(r *PegawaiRequest)
		fields []string
	}{
		{"email dipakai", func(r *PegawaiRequest) { r.Email = "ada@yayasan.sch.id" }, []string{"email"}},
		{"nik dan nip dipakai", func(r *PegawaiRequest) {
			r.NIK = "3201010101010001"
			r.NIP = "NIP-001"
		}, []string{"nik", "nip"}},
		{"nik bukan 16 digit", func(r *PegawaiRequest) { r.NIK = "123" }, []string{"nik"}},
		{"tanpa password", func(r *PegawaiRequest) { r.Password = "" }, []string{"password"}},
		{"departemen tidak ada", func(r *PegawaiRequest) { r.DepartemenID = &missing }, []string{"departemen_id"}},
		{"role tidak ada", func(r *PegawaiRequest) { r.RoleIDs = []uint{missing} }, []string{"role_ids"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pegawaiBaru("baru@yayasan.sch.id", "3201010101010002", "NIP-002")
			tt.mutate(&req)
			_, err := uc.Create(req)
			appErr := requireCode(t, err, http.StatusUnprocessableEntity)
			for _, f := range tt.fields {
				assert.Contains(t, appErr.Fields, f)
			}
		})
	}

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPegawai_UpdateSyncRoles(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newPegawaiUsecase(db)
	guru := testutil.CreateRole(t, db, model.RoleGuru)
	staf := testutil.CreateRole(t, db, model.RoleStaf)

	req := pegawaiBaru("ani@yayasan.sch.id", "3201010101010001", "NIP-001")
	req.RoleIDs = []uint{guru.ID}
	user, err := uc.Create(req)
	require.NoError(t, err)

	// RoleIDs nil berarti role tidak diubah
	req.RoleIDs = nil
	req.Password = ""
	req.Nama = "Ani Lestari"
	user, err = uc.Update(context.Background(), user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Ani Lestari", user.Nama)
	assert.Equal(t, []string{model.RoleGuru}, user.RoleNames())

	user, err = uc.SyncRoles(context.Background(), user.ID, []uint{staf.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleStaf}, user.RoleNames())
}

func TestPegawai_BulkDelete(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newPegawaiUsecase(db)
	admin := testutil.CreateUser(t, db, "Admin", "admin@yayasan.sch.id", "3201010101010001", "NIP-001")
	a := testutil.CreateUser(t, db, "A", "a@yayasan.sch.id", "3201010101010002", "NIP-002")
	b := testutil.CreateUser(t, db, "B", "b@yayasan.sch.id", "3201010101010003", "NIP-003")

	ctx := context.Background()
	_, err := uc.BulkDelete(ctx, "", admin.ID)
	requireCode(t, err, http.StatusUnprocessableEntity)

	_, err = uc.BulkDelete(ctx, idsOf(admin.ID, a.ID), admin.ID)
	requireCode(t, err, http.StatusUnprocessableEntity)

	n, err := uc.BulkDelete(ctx, idsOf(a.ID, b.ID), admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, total, err := uc.List(repository.UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestPegawai_ExportDanQRCode(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newPegawaiUsecase(db)
	user := testutil.CreateUser(t, db, "Ani", "ani@yayasan.sch.id", "3201010101010001", "NIP-001")
	testutil.CreateUser(t, db, "Budi", "budi@yayasan.sch.id", "3201010101010002", "NIP-002")

	buf, err := uc.Export(repository.UserFilter{})
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Pegawai")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ani", rows[1][1])

	png, name, err := uc.QRCode(user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "qr-NIP-001.png", name)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
