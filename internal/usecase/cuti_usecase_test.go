package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/notify"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/testutil"
)

func TestStatusBerikutnya(t *testing.T) {
	tests := []struct {
		from  string
		jenis string
		want  string
		ok    bool
	}{
		{model.CutiMenungguKepalaSekolah, model.JenisCutiTahunan, model.CutiMenungguHRD, true},
		{model.CutiMenungguKepalaSekolah, model.JenisCutiSakit, model.CutiMenungguHRD, true},
		{model.CutiMenungguHRD, model.JenisCutiTahunan, model.CutiMenungguDirektur, true},
		{model.CutiMenungguHRD, model.JenisCutiSakit, model.CutiDisetujui, true},
		{model.CutiMenungguHRD, model.JenisCutiMelahirkan, model.CutiDisetujui, true},
		{model.CutiMenungguDirektur, model.JenisCutiTahunan, model.CutiDisetujui, true},
		{model.CutiDisetujui, model.JenisCutiTahunan, "", false},
		{model.CutiDitolak, model.JenisCutiSakit, "", false},
		{model.CutiDibatalkan, model.JenisCutiSakit, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"/"+tt.jenis, func(t *testing.T) {
			got, ok := StatusBerikutnya(tt.from, tt.jenis)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// recorder menyimpan event yang dipublikasikan usecase.
type recorder struct{ events []notify.Event }

func (r *recorder) Publish(e notify.Event) { r.events = append(r.events, e) }

type pelakuCuti struct {
	guru, kepsek, hrd, direktur model.User
}

func (e *env) pelakuCuti(t *testing.T) pelakuCuti {
	t.Helper()
	guru := testutil.CreateRole(t, e.db, model.RoleGuru)
	ks := testutil.CreateRole(t, e.db, model.RoleKepalaSekolah)
	hrd := testutil.CreateRole(t, e.db, model.RoleHRD)
	dir := testutil.CreateRole(t, e.db, model.RoleDirektur)
	return pelakuCuti{
		guru:     testutil.CreateUser(t, e.db, "Siti", "siti@yayasan.sch.id", "3201010101010001", "NIP-001", testutil.WithRoles(guru)),
		kepsek:   testutil.CreateUser(t, e.db, "Pak Kepala", "kepsek@yayasan.sch.id", "3201010101010002", "NIP-002", testutil.WithRoles(ks)),
		hrd:      testutil.CreateUser(t, e.db, "Bu HRD", "hrd@yayasan.sch.id", "3201010101010003", "NIP-003", testutil.WithRoles(hrd)),
		direktur: testutil.CreateUser(t, e.db, "Pak Direktur", "direktur@yayasan.sch.id", "3201010101010004", "NIP-004", testutil.WithRoles(dir)),
	}
}

func TestCuti_TahunanLewatDirektur(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	events := &recorder{}
	uc := NewCutiUsecase(e.cuti, e.users, e.kalender, e.store, events, cutiCfg(12), jakarta, e.clock.Now)
	p := e.pelakuCuti(t)

	// Rabu sampai Senin: Minggu dilewati, Sabtu tetap hari kerja tanpa JamKerja
	cuti, err := uc.Ajukan(context.Background(), p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-12", TanggalSelesai: "2025-03-17", Alasan: "Acara keluarga",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.CutiMenungguKepalaSekolah, cuti.Status)
	assert.Equal(t, 5, cuti.JumlahHari)

	// tahap tidak bisa dilompati
	_, err = uc.Setujui(cuti.ID, p.hrd.ID, ProsesCutiRequest{})
	requireCode(t, err, http.StatusForbidden)

	cuti, err = uc.Setujui(cuti.ID, p.kepsek.ID, ProsesCutiRequest{Catatan: "ok"})
	require.NoError(t, err)
	assert.Equal(t, model.CutiMenungguHRD, cuti.Status)
	require.NotNil(t, cuti.KepalaSekolahID)
	assert.Equal(t, p.kepsek.ID, *cuti.KepalaSekolahID)

	// persetujuan kepala sekolah tidak bisa diulang
	_, err = uc.Setujui(cuti.ID, p.kepsek.ID, ProsesCutiRequest{})
	requireCode(t, err, http.StatusForbidden)

	cuti, err = uc.Setujui(cuti.ID, p.hrd.ID, ProsesCutiRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.CutiMenungguDirektur, cuti.Status)

	antrean, err := uc.Antrean(p.direktur.ID)
	require.NoError(t, err)
	require.Len(t, antrean, 1)

	cuti, err = uc.Setujui(cuti.ID, p.direktur.ID, ProsesCutiRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.CutiDisetujui, cuti.Status)

	_, err = uc.Setujui(cuti.ID, p.direktur.ID, ProsesCutiRequest{})
	requireCode(t, err, http.StatusConflict)

	list, err := e.absensi.ListByUserMonth(p.guru.ID, 2025, 3)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, a := range list {
		assert.Equal(t, model.StatusCuti, a.Status)
		assert.NotEqual(t, "2025-03-16", a.Tanggal)
	}

	require.Len(t, events.events, 4)
	assert.Equal(t, notify.CutiDiajukan, events.events[0].Type)
	assert.Equal(t, model.CutiMenungguDirektur, events.events[3].OldStatus)
}

func TestCuti_SelainTahunanSelesaiDiHRD(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	uc := e.cutiUsecase(12)
	p := e.pelakuCuti(t)

	cuti, err := uc.Ajukan(context.Background(), p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiPenting, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-11", Alasan: "Pernikahan saudara",
	}, nil)
	require.NoError(t, err)

	_, err = uc.Setujui(cuti.ID, p.kepsek.ID, ProsesCutiRequest{})
	require.NoError(t, err)
	cuti, err = uc.Setujui(cuti.ID, p.hrd.ID, ProsesCutiRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.CutiDisetujui, cuti.Status)
	assert.Nil(t, cuti.DirekturID)
}

func TestCuti_KepalaSekolahMulaiDiHRD(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	uc := e.cutiUsecase(12)
	p := e.pelakuCuti(t)

	cuti, err := uc.Ajukan(context.Background(), p.kepsek.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-12", Alasan: "Istirahat",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.CutiMenungguHRD, cuti.Status)

	// kepala sekolah tidak bisa menyetujui pengajuannya sendiri, super admin sekalipun
	superAdmin := testutil.CreateRole(t, e.db, model.RoleSuperAdmin)
	require.NoError(t, e.db.Model(&p.kepsek).Association("Roles").Append(&superAdmin))
	_, err = uc.Setujui(cuti.ID, p.kepsek.ID, ProsesCutiRequest{})
	requireCode(t, err, http.StatusForbidden)
}

func TestCuti_TolakWajibCatatan(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	uc := e.cutiUsecase(12)
	p := e.pelakuCuti(t)

	cuti, err := uc.Ajukan(context.Background(), p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiLainnya, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-11", Alasan: "Keperluan pribadi",
	}, nil)
	require.NoError(t, err)

	_, err = uc.Tolak(cuti.ID, p.kepsek.ID, ProsesCutiRequest{})
	appErr := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "catatan")

	_, err = uc.Tolak(cuti.ID, p.kepsek.ID, ProsesCutiRequest{Catatan: "  \t\n "})
	appErr = requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "catatan")

	cuti, err = uc.Tolak(cuti.ID, p.kepsek.ID, ProsesCutiRequest{Catatan: "  Jadwal ujian "})
	require.NoError(t, err)
	assert.Equal(t, model.CutiDitolak, cuti.Status)
	assert.Equal(t, "Jadwal ujian", cuti.CatatanKepalaSekolah)

	_, err = uc.Batalkan(cuti.ID, p.guru.ID)
	requireCode(t, err, http.StatusConflict)
}

func TestCuti_RoleApproverDibacaDariDatabase(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	uc := e.cutiUsecase(12)
	p := e.pelakuCuti(t)

	cuti, err := uc.Ajukan(context.Background(), p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiLainnya, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-11", Alasan: "Keperluan pribadi",
	}, nil)
	require.NoError(t, err)

	antrean, err := uc.Antrean(p.kepsek.ID)
	require.NoError(t, err)
	require.Len(t, antrean, 1)

	// role kepala sekolah dicabut setelah login
	require.NoError(t, e.db.Model(&p.kepsek).Association("Roles").Clear())
	antrean, err = uc.Antrean(p.kepsek.ID)
	require.NoError(t, err)
	assert.Empty(t, antrean)
	_, err = uc.Setujui(cuti.ID, p.kepsek.ID, ProsesCutiRequest{})
	requireCode(t, err, http.StatusForbidden)

	// approver yang dinonaktifkan tidak bisa memproses walau role-nya masih ada
	require.NoError(t, e.db.Model(&model.User{}).Where("id = ?", p.hrd.ID).Update("is_active", false).Error)
	_, err = uc.Antrean(p.hrd.ID)
	requireCode(t, err, http.StatusUnauthorized)
	_, err = uc.Tolak(cuti.ID, p.hrd.ID, ProsesCutiRequest{Catatan: "Tidak bisa"})
	requireCode(t, err, http.StatusUnauthorized)

	cuti, err = uc.Get(cuti.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CutiMenungguKepalaSekolah, cuti.Status)
}

func TestCuti_Batalkan(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	uc := e.cutiUsecase(12)
	p := e.pelakuCuti(t)

	cuti, err := uc.Ajukan(context.Background(), p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-11", Alasan: "Keperluan pribadi",
	}, nil)
	require.NoError(t, err)

	_, err = uc.Batalkan(cuti.ID, p.hrd.ID)
	requireCode(t, err, http.StatusForbidden)

	cuti, err = uc.Batalkan(cuti.ID, p.guru.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CutiDibatalkan, cuti.Status)

	kuota, err := uc.Kuota(p.guru.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 12, kuota.Sisa)
}

func TestCuti_ValidasiPengajuan(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	uc := e.cutiUsecase(5)
	p := e.pelakuCuti(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   AjukanCutiRequest
		code  int
		field string
	}{
		{"selesai sebelum mulai", AjukanCutiRequest{JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-12", TanggalSelesai: "2025-03-11", Alasan: "x"}, http.StatusUnprocessableEntity, "tanggal_selesai"},
		{"tanggal lampau", AjukanCutiRequest{JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-07", TanggalSelesai: "2025-03-11", Alasan: "x"}, http.StatusUnprocessableEntity, "tanggal_mulai"},
		{"hanya hari minggu", AjukanCutiRequest{JenisCuti: model.JenisCutiLainnya, TanggalMulai: "2025-03-16", TanggalSelesai: "2025-03-16", Alasan: "x"}, http.StatusUnprocessableEntity, "tanggal_mulai"},
		{"terlalu panjang", AjukanCutiRequest{JenisCuti: model.JenisCutiMelahirkan, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-07-11", Alasan: "x"}, http.StatusUnprocessableEntity, "tanggal_selesai"},
		{"melebihi kuota", AjukanCutiRequest{JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-18", Alasan: "x"}, http.StatusUnprocessableEntity, "tanggal_selesai"},
		{"jenis tidak dikenal", AjukanCutiRequest{JenisCuti: "liburan", TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-11", Alasan: "x"}, http.StatusUnprocessableEntity, "jenis_cuti"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Ajukan(ctx, p.guru.ID, tt.req, nil)
			appErr := requireCode(t, err, tt.code)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}

	// sakit boleh diajukan mundur
	_, err := uc.Ajukan(ctx, p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiSakit, TanggalMulai: "2025-03-06", TanggalSelesai: "2025-03-07", Alasan: "Tipes",
	}, nil)
	require.NoError(t, err)

	// rentang yang beririsan dengan pengajuan aktif ditolak
	_, err = uc.Ajukan(ctx, p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiSakit, TanggalMulai: "2025-03-07", TanggalSelesai: "2025-03-10", Alasan: "Kambuh",
	}, nil)
	requireCode(t, err, http.StatusConflict)
}

func TestCuti_Kuota(t *testing.T) {
	e := newEnv(t, jam("2025-03-10", "08:00:00"))
	uc := e.cutiUsecase(5)
	p := e.pelakuCuti(t)
	ctx := context.Background()

	_, err := uc.Ajukan(ctx, p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-11", TanggalSelesai: "2025-03-13", Alasan: "Mudik",
	}, nil)
	require.NoError(t, err)

	kuota, err := uc.Kuota(p.guru.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, KuotaCuti{Tahun: 2025, Kuota: 5, Terpakai: 3, Sisa: 2}, *kuota)

	_, err = uc.Ajukan(ctx, p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2025-03-24", TanggalSelesai: "2025-03-26", Alasan: "Lagi",
	}, nil)
	requireCode(t, err, http.StatusUnprocessableEntity)

	// cuti tahun berikutnya memakai kuota tahun itu
	_, err = uc.Ajukan(ctx, p.guru.ID, AjukanCutiRequest{
		JenisCuti: model.JenisCutiTahunan, TanggalMulai: "2026-01-05", TanggalSelesai: "2026-01-07", Alasan: "Awal tahun",
	}, nil)
	require.NoError(t, err)

	list, total, err := uc.ListMilik(p.guru.ID, repository.CutiFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)
}
