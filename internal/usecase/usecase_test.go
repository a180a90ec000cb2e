package usecase

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/storage"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/testutil"
)

// Koordinat kantor yayasan di test. Titik luar radius berjarak sekitar 11 km.
const (
	kantorLat = -6.2000
	kantorLon = 106.8166
	jauhLat   = -6.3000
)

var jakarta = mustLoc("Asia/Jakarta")

func mustLoc(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// jam membuat waktu di Jakarta. 2025-03-10 adalah hari Senin.
func jam(tanggal, hhmmss string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", tanggal+" "+hhmmss, jakarta)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeClock bisa dimajukan di tengah test.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Set(t time.Time) { c.t = t }

var absensiCfg = config.AbsensiConfig{JamMasuk: "07:00", JamPulang: "15:00", ToleransiMenit: 15, RadiusMeter: 500}

type env struct {
	db       *gorm.DB
	clock    *fakeClock
	users    repository.UserRepository
	absensi  repository.AbsensiRepository
	cuti     repository.PengajuanCutiRepository
	kalender *Kalender
	store    storage.Storage
}

func newEnv(t *testing.T, now time.Time) *env {
	t.Helper()
	db := testutil.PrepareDB(t)
	store, err := storage.NewLocalStorage(t.TempDir(), "/storage")
	require.NoError(t, err)
	return &env{
		db:       db,
		clock:    &fakeClock{t: now},
		users:    repository.NewUserRepository(db),
		absensi:  repository.NewAbsensiRepository(db),
		cuti:     repository.NewPengajuanCutiRepository(db),
		kalender: NewKalender(repository.NewJamKerjaRepository(db), repository.NewHariLiburRepository(db), absensiCfg),
		store:    store,
	}
}

func (e *env) absensiUsecase() *AbsensiUsecase {
	return NewAbsensiUsecase(e.absensi, e.users, e.kalender, e.store, absensiCfg, jakarta, e.clock.Now)
}

func (e *env) cutiUsecase(kuota int) *CutiUsecase {
	return NewCutiUsecase(e.cuti, e.users, e.kalender, e.store, nil, cutiCfg(kuota), jakarta, e.clock.Now)
}

// pegawaiKantor membuat pegawai dengan tempat kerja di koordinat kantor.
func (e *env) pegawaiKantor(t *testing.T, nama, email, nik, nip string, roles ...model.Role) model.User {
	t.Helper()
	tk := model.TempatKerja{}
	if err := e.db.Where(model.TempatKerja{Nama: "Kantor Yayasan"}).
		Attrs(model.TempatKerja{Latitude: kantorLat, Longitude: kantorLon, RadiusMeter: 500}).
		FirstOrCreate(&tk).Error; err != nil {
		t.Fatalf("pegawaiKantor() failed: %v", err)
	}
	return testutil.CreateUser(t, e.db, nama, email, nik, nip, testutil.WithTempatKerja(tk.ID), testutil.WithRoles(roles...))
}

func lokasi(lat, lon float64) LokasiRequest {
	return LokasiRequest{Latitude: &lat, Longitude: &lon}
}

func requireCode(t *testing.T, err error, code int) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func cutiCfg(kuota int) config.CutiConfig {
	return config.CutiConfig{KuotaTahunan: kuota}
}

func idsOf(ids ...uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
