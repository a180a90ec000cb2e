package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

// RekapBulanan adalah jumlah kehadiran satu pegawai dalam satu bulan.
type RekapBulanan struct {
	UserID      uint   `json:"user_id"`
	Nama        string `json:"nama"`
	NIP         string `json:"nip" gorm:"column:nip"`
	Hadir       int64  `json:"hadir"`
	Terlambat   int64  `json:"terlambat"`
	Izin        int64  `json:"izin"`
	Sakit       int64  `json:"sakit"`
	Cuti        int64  `json:"cuti"`
	Alpha       int64  `json:"alpha"`
	PulangCepat int64  `json:"pulang_cepat"`
}

type DashboardRepository interface {
	NotCheckedIn(tanggal string) ([]model.User, error)
	MonthlyRecap(tahun, bulan int, userID uint) ([]RekapBulanan, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

// NotCheckedIn mengembalikan pegawai aktif yang belum punya baris absensi pada tanggal tersebut.
func (r *dashboardRepository) NotCheckedIn(tanggal string) ([]model.User, error) {
	var users []model.User
	sub := r.db.Model(&model.Absensi{}).Select("user_id").Where("tanggal = ?", tanggal)
	err := r.db.Preload("ProfilePekerjaan").
		Where("is_active = ? AND id NOT IN (?)", true, sub).
		Order("nama asc").
		Find(&users).Error
	return users, err
}

// MonthlyRecap menghitung status per pegawai aktif. Pegawai tanpa absensi tetap muncul dengan nilai nol.
func (r *dashboardRepository) MonthlyRecap(tahun, bulan int, userID uint) ([]RekapBulanan, error) {
	var rows []RekapBulanan
	query := r.db.Table("users").
		Select(`users.id AS user_id, users.nama AS nama, profile_pekerjaans.nip AS nip,
			COALESCE(SUM(CASE WHEN absensis.status = ? THEN 1 ELSE 0 END), 0) AS hadir,
			COALESCE(SUM(CASE WHEN absensis.status = ? THEN 1 ELSE 0 END), 0) AS terlambat,
			COALESCE(SUM(CASE WHEN absensis.status = ? THEN 1 ELSE 0 END), 0) AS izin,
			COALESCE(SUM(CASE WHEN absensis.status = ? THEN 1 ELSE 0 END), 0) AS sakit,
			COALESCE(SUM(CASE WHEN absensis.status = ? THEN 1 ELSE 0 END), 0) AS cuti,
			COALESCE(SUM(CASE WHEN absensis.status = ? THEN 1 ELSE 0 END), 0) AS alpha,
			COALESCE(SUM(CASE WHEN absensis.pulang_cepat = ? THEN 1 ELSE 0 END), 0) AS pulang_cepat`,
			model.StatusHadir, model.StatusTerlambat, model.StatusIzin, model.StatusSakit,
			model.StatusCuti, model.StatusAlpha, true).
		Joins("LEFT JOIN profile_pekerjaans ON profile_pekerjaans.user_id = users.id").
		Joins("LEFT JOIN absensis ON absensis.user_id = users.id AND absensis.deleted_at IS NULL AND absensis.tanggal LIKE ?",
			monthPrefix(tahun, bulan)).
		Where("users.deleted_at IS NULL AND users.is_active = ?", true)
	if userID != 0 {
		query = query.Where("users.id = ?", userID)
	}
	err := query.Group("users.id, users.nama, profile_pekerjaans.nip").
		Order("users.nama asc").
		Scan(&rows).Error
	return rows, err
}
