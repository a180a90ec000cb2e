package usecase

import (
	"bytes"
	"fmt"
	"time"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/export"
	"sdm-yayasan-backend/internal/pkg/notify"
	"sdm-yayasan-backend/internal/repository"
)

type Dashboard struct {
	Tanggal          string           `json:"tanggal"`
	PegawaiAktif     int64            `json:"pegawai_aktif"`
	AbsensiHariIni   map[string]int64 `json:"absensi_hari_ini"`
	CutiMenunggu     int64            `json:"cuti_menunggu"`
	BelumAbsen       []model.User     `json:"belum_absen"`
	JumlahBelumAbsen int              `json:"jumlah_belum_absen"`
}

type LaporanUsecase struct {
	dashboard repository.DashboardRepository
	users     repository.UserRepository
	absensi   repository.AbsensiRepository
	cuti      repository.PengajuanCutiRepository
	loc       *time.Location
	now       Clock
}

func NewLaporanUsecase(
	dashboard repository.DashboardRepository,
	users repository.UserRepository,
	absensi repository.AbsensiRepository,
	cuti repository.PengajuanCutiRepository,
	loc *time.Location,
	now Clock,
) *LaporanUsecase {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &LaporanUsecase{dashboard: dashboard, users: users, absensi: absensi, cuti: cuti, loc: loc, now: now}
}

func (u *LaporanUsecase) Dashboard() (*Dashboard, error) {
	tanggal := u.now().In(u.loc).Format(layoutTanggal)

	aktif, err := u.users.CountActive()
	if err != nil {
		return nil, internal(err, "count pegawai aktif")
	}
	perStatus, err := u.absensi.CountByStatus(tanggal)
	if err != nil {
		return nil, internal(err, "count absensi")
	}
	pending, err := u.cuti.CountPending()
	if err != nil {
		return nil, internal(err, "count cuti pending")
	}
	belum, err := u.dashboard.NotCheckedIn(tanggal)
	if err != nil {
		return nil, internal(err, "pegawai belum absen")
	}

	return &Dashboard{
		Tanggal:          tanggal,
		PegawaiAktif:     aktif,
		AbsensiHariIni:   perStatus,
		CutiMenunggu:     pending,
		BelumAbsen:       belum,
		JumlahBelumAbsen: len(belum),
	}, nil
}

// periode mengisi bulan dan tahun berjalan bila kosong.
func (u *LaporanUsecase) periode(tahun, bulan int) (int, int, error) {
	now := u.now().In(u.loc)
	if tahun == 0 {
		tahun = now.Year()
	}
	if bulan == 0 {
		bulan = int(now.Month())
	}
	if bulan < 1 || bulan > 12 {
		return 0, 0, apperror.Field("bulan", "bulan harus antara 1 dan 12")
	}
	if tahun < 2000 || tahun > 2100 {
		return 0, 0, apperror.Field("tahun", "tahun tidak valid")
	}
	return tahun, bulan, nil
}

func (u *LaporanUsecase) RekapBulanan(tahun, bulan int, userID uint) ([]repository.RekapBulanan, error) {
	tahun, bulan, err := u.periode(tahun, bulan)
	if err != nil {
		return nil, err
	}
	rekap, err := u.dashboard.MonthlyRecap(tahun, bulan, userID)
	if err != nil {
		return nil, internal(err, "rekap bulanan")
	}
	return rekap, nil
}

// RekapBulananExcel mengembalikan workbook rekap beserta nama file unduhannya.
func (u *LaporanUsecase) RekapBulananExcel(tahun, bulan int, userID uint) (*bytes.Buffer, string, error) {
	tahun, bulan, err := u.periode(tahun, bulan)
	if err != nil {
		return nil, "", err
	}
	rekap, err := u.RekapBulanan(tahun, bulan, userID)
	if err != nil {
		return nil, "", err
	}

	sheet := export.Sheet{
		Name:    fmt.Sprintf("Rekap %s %d", notify.NamaBulan(bulan), tahun),
		Headers: []string{"No", "NIP", "Nama", "Hadir", "Terlambat", "Izin", "Sakit", "Cuti", "Alpha", "Pulang Cepat"},
	}
	for i, r := range rekap {
		sheet.Rows = append(sheet.Rows, []interface{}{
			i + 1, r.NIP, r.Nama, r.Hadir, r.Terlambat, r.Izin, r.Sakit, r.Cuti, r.Alpha, r.PulangCepat,
		})
	}
	buf, err := export.Excel(sheet)
	if err != nil {
		return nil, "", internal(err, "rekap bulanan excel")
	}
	return buf, fmt.Sprintf("rekap-absensi-%04d-%02d.xlsx", tahun, bulan), nil
}
