package usecase

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/testutil"
)

func newMasterDataUsecase(db *gorm.DB) *MasterDataUsecase {
	return NewMasterDataUsecase(
		repository.NewDepartemenRepository(db),
		repository.NewJabatanRepository(db),
		repository.NewTempatKerjaRepository(db),
		repository.NewJamKerjaRepository(db),
		repository.NewHariLiburRepository(db),
		repository.NewTahunAjaranRepository(db),
		repository.NewRoleRepository(db),
	)
}

func TestMasterData_DepartemenJabatan(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newMasterDataUsecase(db)

	sd, err := uc.CreateDepartemen(DepartemenRequest{Nama: "SD"})
	require.NoError(t, err)
	_, err = uc.CreateDepartemen(DepartemenRequest{Nama: "SD"})
	appErr := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "nama")

	missing := uint(404)
	_, err = uc.CreateJabatan(JabatanRequest{Nama: "Wali Kelas", DepartemenID: &missing})
	appErr = requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "departemen_id")

	j, err := uc.CreateJabatan(JabatanRequest{Nama: "Wali Kelas", DepartemenID: &sd.ID})
	require.NoError(t, err)
	require.NotNil(t, j.DepartemenID)

	require.NoError(t, uc.DeleteDepartemen(sd.ID))
	j, err = uc.GetJabatan(j.ID)
	require.NoError(t, err)
	assert.Nil(t, j.DepartemenID)

	requireCode(t, uc.DeleteDepartemen(sd.ID), http.StatusNotFound)
}

func TestMasterData_TempatKerja(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newMasterDataUsecase(db)
	lat, lon := kantorLat, kantorLon

	tk, err := uc.CreateTempatKerja(TempatKerjaRequest{Nama: "SD Harapan", Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)
	assert.Equal(t, 500.0, tk.RadiusMeter)

	badLat := 95.0
	_, err = uc.CreateTempatKerja(TempatKerjaRequest{Nama: "Salah", Latitude: &badLat, Longitude: &lon})
	appErr := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "latitude")

	_, err = uc.CreateTempatKerja(TempatKerjaRequest{Nama: "Tanpa Koordinat"})
	requireCode(t, err, http.StatusUnprocessableEntity)

	tk, err = uc.UpdateTempatKerja(tk.ID, TempatKerjaRequest{Nama: "SD Harapan", Latitude: &lat, Longitude: &lon, RadiusMeter: 150})
	require.NoError(t, err)
	assert.Equal(t, 150.0, tk.RadiusMeter)
}

func TestMasterData_JamKerja(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newMasterDataUsecase(db)
	guru := testutil.CreateRole(t, db, model.RoleGuru)
	senin := 1

	_, err := uc.SimpanJamKerja(JamKerjaRequest{RoleID: guru.ID, Hari: &senin, JamMasuk: "15:00", JamPulang: "07:00"})
	appErr := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "jam_pulang")

	_, err = uc.SimpanJamKerja(JamKerjaRequest{RoleID: guru.ID, Hari: &senin})
	appErr = requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "jam_masuk")

	_, err = uc.SimpanJamKerja(JamKerjaRequest{RoleID: 999, Hari: &senin, JamMasuk: "07:00", JamPulang: "14:00"})
	appErr = requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "role_id")

	_, err = uc.SimpanJamKerja(JamKerjaRequest{RoleID: guru.ID, Hari: &senin, JamMasuk: "07:00", JamPulang: "14:00"})
	require.NoError(t, err)
	_, err = uc.SimpanJamKerja(JamKerjaRequest{RoleID: guru.ID, Hari: &senin, JamMasuk: "07:15", JamPulang: "13:00"})
	require.NoError(t, err)

	list, err := uc.ListJamKerja(guru.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "07:15", list[0].JamMasuk)

	minggu := 0
	libur, err := uc.SimpanJamKerja(JamKerjaRequest{RoleID: guru.ID, Hari: &minggu, JamMasuk: "07:00", IsLibur: true})
	require.NoError(t, err)
	assert.Empty(t, libur.JamMasuk)
}

func TestMasterData_HariLiburDanTahunAjaran(t *testing.T) {
	db := testutil.PrepareDB(t)
	uc := newMasterDataUsecase(db)

	h, err := uc.CreateHariLibur(HariLiburRequest{Tanggal: "2025-08-17", Keterangan: "HUT RI"})
	require.NoError(t, err)
	_, err = uc.CreateHariLibur(HariLiburRequest{Tanggal: "2025-08-17", Keterangan: "Duplikat"})
	requireCode(t, err, http.StatusUnprocessableEntity)
	_, err = uc.CreateHariLibur(HariLiburRequest{Tanggal: "17-08-2025", Keterangan: "Format salah"})
	requireCode(t, err, http.StatusUnprocessableEntity)

	n, err := uc.BulkDeleteHariLibur(idsOf(h.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	a, err := uc.CreateTahunAjaran(TahunAjaranRequest{Nama: "2024/2025", TanggalMulai: "2024-07-15", TanggalSelesai: "2025-06-30", IsAktif: true})
	require.NoError(t, err)
	assert.True(t, a.IsAktif)
	b, err := uc.CreateTahunAjaran(TahunAjaranRequest{Nama: "2025/2026", TanggalMulai: "2025-07-14", TanggalSelesai: "2026-06-30"})
	require.NoError(t, err)
	assert.False(t, b.IsAktif)

	_, err = uc.CreateTahunAjaran(TahunAjaranRequest{Nama: "2026/2027", TanggalMulai: "2027-06-30", TanggalSelesai: "2026-07-13"})
	requireCode(t, err, http.StatusUnprocessableEntity)

	b, err = uc.AktifkanTahunAjaran(b.ID)
	require.NoError(t, err)
	assert.True(t, b.IsAktif)
	a, err = uc.GetTahunAjaran(a.ID)
	require.NoError(t, err)
	assert.False(t, a.IsAktif)

	// update tanpa is_aktif tidak menonaktifkan tahun berjalan
	b, err = uc.UpdateTahunAjaran(b.ID, TahunAjaranRequest{Nama: "2025/2026", TanggalMulai: "2025-07-14", TanggalSelesai: "2026-06-27"})
	require.NoError(t, err)
	b, err = uc.GetTahunAjaran(b.ID)
	require.NoError(t, err)
	assert.True(t, b.IsAktif)
	assert.Equal(t, "2026-06-27", b.TanggalSelesai)
}
