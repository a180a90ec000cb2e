package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/testutil"
)

func TestAbsensiRepository_UniquePerDay(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewAbsensiRepository(db)
	user := testutil.CreateUser(t, db, "Ani", "ani@yayasan.id", "3201010101010001", "1987001")

	now := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&model.Absensi{UserID: user.ID, Tanggal: "2025-03-03", JamMasuk: &now, Status: model.StatusHadir}, model.AksiCheckIn, Audit{ActorID: &user.ID}))

	err := repo.Create(&model.Absensi{UserID: user.ID, Tanggal: "2025-03-03", JamMasuk: &now, Status: model.StatusHadir}, model.AksiCheckIn, Audit{})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestAbsensiRepository_SoftDeleteAndRestore(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewAbsensiRepository(db)
	user := testutil.CreateUser(t, db, "Ani", "ani@yayasan.id", "3201010101010001", "1987001")

	a := &model.Absensi{UserID: user.ID, Tanggal: "2025-03-03", Status: model.StatusIzin}
	require.NoError(t, repo.Create(a, model.AksiIzin, Audit{}))
	b := &model.Absensi{UserID: user.ID, Tanggal: "2025-03-04", Status: model.StatusSakit}
	require.NoError(t, repo.Create(b, model.AksiIzin, Audit{}))

	require.NoError(t, repo.SoftDelete(a.ID, Audit{Keterangan: "salah input"}))

	list, total, err := repo.List(AbsensiFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	_, total, err = repo.List(AbsensiFilter{Trashed: TrashedWith})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	list, _, err = repo.List(AbsensiFilter{Trashed: TrashedOnly})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = repo.FindByUserAndDate(user.ID, "2025-03-03", false)
	assert.True(t, IsNotFound(err))
	found, err := repo.FindByUserAndDate(user.ID, "2025-03-03", true)
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)

	require.NoError(t, repo.Restore(a.ID, Audit{}))
	_, total, err = repo.List(AbsensiFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	err = repo.Restore(a.ID, Audit{})
	assert.True(t, IsNotFound(err), "restoring a live row must fail")

	logs, err := repo.Logs(a.ID)
	require.NoError(t, err)
	aksi := make([]string, 0, len(logs))
	for _, l := range logs {
		aksi = append(aksi, l.Aksi)
	}
	assert.Equal(t, []string{model.AksiIzin, model.AksiHapus, model.AksiPulihkan}, aksi)
	assert.Equal(t, "salah input", logs[1].Keterangan)
	assert.NotEmpty(t, logs[1].DataLama)
	assert.Empty(t, logs[1].DataBaru)
}

func TestAbsensiRepository_ForceDeleteKeepsLog(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewAbsensiRepository(db)
	user := testutil.CreateUser(t, db, "Ani", "ani@yayasan.id", "3201010101010001", "1987001")

	a := &model.Absensi{UserID: user.ID, Tanggal: "2025-03-03", Status: model.StatusAlpha}
	require.NoError(t, repo.Create(a, model.AksiBuat, Audit{}))
	require.NoError(t, repo.ForceDelete(a.ID, Audit{}))

	_, err := repo.GetByID(a.ID, true)
	assert.True(t, IsNotFound(err))

	logs, err := repo.Logs(a.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	// tanggal yang sama boleh diisi lagi setelah hapus permanen
	require.NoError(t, repo.Create(&model.Absensi{UserID: user.ID, Tanggal: "2025-03-03", Status: model.StatusIzin}, model.AksiBuat, Audit{}))
}

func TestAbsensiRepository_CheckOutOnce(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewAbsensiRepository(db)
	user := testutil.CreateUser(t, db, "Ani", "ani@yayasan.id", "3201010101010001", "1987001")

	masuk := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)
	a := &model.Absensi{UserID: user.ID, Tanggal: "2025-03-03", JamMasuk: &masuk, Status: model.StatusHadir}
	require.NoError(t, repo.Create(a, model.AksiCheckIn, Audit{}))

	pulang := masuk.Add(8 * time.Hour)
	updated, err := repo.CheckOut(a.ID, pulang, -6.2, 106.8, false, Audit{})
	require.NoError(t, err)
	assert.True(t, updated.SudahCheckOut())

	_, err = repo.CheckOut(a.ID, pulang.Add(time.Minute), -6.2, 106.8, false, Audit{})
	assert.ErrorIs(t, err, ErrStaleState)
}

func TestAbsensiRepository_DeleteManyAndCount(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewAbsensiRepository(db)
	ani := testutil.CreateUser(t, db, "Ani", "ani@yayasan.id", "3201010101010001", "1987001")
	budi := testutil.CreateUser(t, db, "Budi", "budi@yayasan.id", "3201010101010002", "1987002")
	cici := testutil.CreateUser(t, db, "Cici", "cici@yayasan.id", "3201010101010003", "1987003")

	rows := []*model.Absensi{
		{UserID: ani.ID, Tanggal: "2025-03-03", Status: model.StatusHadir},
		{UserID: budi.ID, Tanggal: "2025-03-03", Status: model.StatusTerlambat},
		{UserID: cici.ID, Tanggal: "2025-03-03", Status: model.StatusHadir},
	}
	for _, row := range rows {
		require.NoError(t, repo.Create(row, model.AksiBuat, Audit{}))
	}

	counts, err := repo.CountByStatus("2025-03-03")
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[model.StatusHadir])
	assert.EqualValues(t, 1, counts[model.StatusTerlambat])
	assert.EqualValues(t, 0, counts[model.StatusCuti])

	n, err := repo.DeleteMany([]uint{rows[0].ID, rows[1].ID, 9999}, Audit{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	counts, err = repo.CountByStatus("2025-03-03")
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[model.StatusHadir])
	assert.EqualValues(t, 0, counts[model.StatusTerlambat])
}
