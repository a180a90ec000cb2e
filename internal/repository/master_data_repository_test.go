package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/testutil"
)

func TestTahunAjaranRepository_ActivateKeepsOneActive(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewTahunAjaranRepository(db)

	a := &model.TahunAjaran{Nama: "2024/2025", TanggalMulai: "2024-07-15", TanggalSelesai: "2025-06-30", IsAktif: true}
	b := &model.TahunAjaran{Nama: "2025/2026", TanggalMulai: "2025-07-14", TanggalSelesai: "2026-06-30"}
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	active, err := repo.GetActive()
	require.NoError(t, err)
	assert.Equal(t, a.ID, active.ID)

	require.NoError(t, repo.Activate(b.ID))
	active, err = repo.GetActive()
	require.NoError(t, err)
	assert.Equal(t, b.ID, active.ID)

	var count int64
	db.Model(&model.TahunAjaran{}).Where("is_aktif = ?", true).Count(&count)
	assert.EqualValues(t, 1, count)

	assert.True(t, IsNotFound(repo.Activate(999)))
}

func TestJamKerjaRepository_Upsert(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewJamKerjaRepository(db)
	guru := testutil.CreateRole(t, db, model.RoleGuru)

	require.NoError(t, repo.Upsert(&model.JamKerja{RoleID: guru.ID, Hari: 1, JamMasuk: "07:00", JamPulang: "14:00"}))
	require.NoError(t, repo.Upsert(&model.JamKerja{RoleID: guru.ID, Hari: 1, JamMasuk: "07:30", JamPulang: "15:00"}))

	list, err := repo.FindForRoles([]uint{guru.ID}, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "07:30", list[0].JamMasuk)

	list, err = repo.FindForRoles(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHariLiburRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewHariLiburRepository(db)

	require.NoError(t, repo.Create(&model.HariLibur{Tanggal: "2025-03-31", Keterangan: "Idul Fitri"}))
	require.NoError(t, repo.Create(&model.HariLibur{Tanggal: "2025-04-01", Keterangan: "Idul Fitri"}))
	err := repo.Create(&model.HariLibur{Tanggal: "2025-04-01"})
	assert.True(t, IsDuplicateKey(err))

	libur, err := repo.IsHoliday("2025-03-31")
	require.NoError(t, err)
	assert.True(t, libur)

	set, err := repo.InRange("2025-03-30", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"2025-03-31": true}, set)

	list, err := repo.GetAll(2024)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDepartemenRepository_DeleteDetachesReferences(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewDepartemenRepository(db)
	jabatanRepo := NewJabatanRepository(db)

	dep := &model.Departemen{Nama: "Kurikulum"}
	require.NoError(t, repo.Create(dep))
	jab := &model.Jabatan{Nama: "Wakasek Kurikulum", DepartemenID: &dep.ID}
	require.NoError(t, jabatanRepo.Create(jab))

	require.NoError(t, repo.Delete(dep.ID))
	assert.True(t, IsNotFound(repo.Delete(dep.ID)))

	got, err := jabatanRepo.GetByID(jab.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DepartemenID)
}

func TestRoleRepository_CreateUpdateDelete(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewRoleRepository(db)
	p1 := &model.Permission{NamaPermission: model.PermKelolaCuti}
	p2 := &model.Permission{NamaPermission: model.PermLihatLaporan}
	require.NoError(t, repo.CreatePermission(p1))
	require.NoError(t, repo.CreatePermission(p2))

	role := &model.Role{NamaRole: "bendahara"}
	require.NoError(t, repo.Create(role, []uint{p1.ID}))
	user := testutil.CreateUser(t, db, "Ani", "ani@yayasan.id", "3201010101010001", "1987001", testutil.WithRoles(*role))

	require.NoError(t, repo.Update(role, []uint{p2.ID}))
	got, err := repo.GetByID(role.ID)
	require.NoError(t, err)
	require.Len(t, got.Permissions, 1)
	assert.Equal(t, model.PermLihatLaporan, got.Permissions[0].NamaPermission)

	require.NoError(t, repo.Delete(role.ID))
	var pivots int64
	db.Table("user_roles").Where("user_id = ?", user.ID).Count(&pivots)
	assert.Zero(t, pivots)
	db.Table("role_permissions").Where("role_id = ?", role.ID).Count(&pivots)
	assert.Zero(t, pivots)
}

func TestDashboardRepository_MonthlyRecap(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewDashboardRepository(db)
	absensiRepo := NewAbsensiRepository(db)
	ani := testutil.CreateUser(t, db, "Ani", "ani@yayasan.id", "3201010101010001", "1987001")
	testutil.CreateUser(t, db, "Budi", "budi@yayasan.id", "3201010101010002", "1987002")

	rows := []*model.Absensi{
		{UserID: ani.ID, Tanggal: "2025-03-03", Status: model.StatusHadir, PulangCepat: true},
		{UserID: ani.ID, Tanggal: "2025-03-04", Status: model.StatusTerlambat},
		{UserID: ani.ID, Tanggal: "2025-03-05", Status: model.StatusSakit},
		{UserID: ani.ID, Tanggal: "2025-04-01", Status: model.StatusHadir},
	}
	for _, row := range rows {
		require.NoError(t, absensiRepo.Create(row, model.AksiBuat, Audit{}))
	}

	recap, err := repo.MonthlyRecap(2025, 3, 0)
	require.NoError(t, err)
	require.Len(t, recap, 2)
	assert.Equal(t, "Ani", recap[0].Nama)
	assert.Equal(t, "1987001", recap[0].NIP)
	assert.EqualValues(t, 1, recap[0].Hadir)
	assert.EqualValues(t, 1, recap[0].Terlambat)
	assert.EqualValues(t, 1, recap[0].Sakit)
	assert.EqualValues(t, 1, recap[0].PulangCepat)
	assert.Equal(t, "Budi", recap[1].Nama)
	assert.Zero(t, recap[1].Hadir)

	missing, err := repo.NotCheckedIn("2025-03-03")
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "Budi", missing[0].Nama)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(ErrStaleState))
}
