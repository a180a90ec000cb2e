package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

type CutiFilter struct {
	UserID    uint   `query:"user_id"`
	Status    string `query:"status"`
	JenisCuti string `query:"jenis_cuti"`
	Tahun     int    `query:"tahun"`
	Pagination
}

type PengajuanCutiRepository interface {
	Create(cuti *model.PengajuanCuti) error
	GetByID(id uint) (*model.PengajuanCuti, error)
	List(filter CutiFilter) ([]model.PengajuanCuti, int64, error)
	ListByStatus(status string, exceptUserID uint) ([]model.PengajuanCuti, error)
	Transition(id uint, from string, changes map[string]interface{}) error
	Approve(id uint, from string, changes map[string]interface{}, rows []model.Absensi, audit Audit) (int, error)
	SumHariTahunan(userID uint, tahun int, exceptID uint) (int, error)
	HasOverlap(userID uint, mulai, selesai string) (bool, error)
	CountPending() (int64, error)
}

type pengajuanCutiRepository struct {
	db *gorm.DB
}

func NewPengajuanCutiRepository(db *gorm.DB) PengajuanCutiRepository {
	return &pengajuanCutiRepository{db}
}

var statusCutiAktif = []string{
	model.CutiMenungguKepalaSekolah,
	model.CutiMenungguHRD,
	model.CutiMenungguDirektur,
	model.CutiDisetujui,
}

func (r *pengajuanCutiRepository) Create(cuti *model.PengajuanCuti) error {
	return r.db.Omit("User").Create(cuti).Error
}

func (r *pengajuanCutiRepository) GetByID(id uint) (*model.PengajuanCuti, error) {
	var cuti model.PengajuanCuti
	err := r.db.Preload("User.ProfilePekerjaan").Preload("User.Roles").First(&cuti, id).Error
	if err != nil {
		return nil, err
	}
	return &cuti, nil
}

func (r *pengajuanCutiRepository) List(filter CutiFilter) ([]model.PengajuanCuti, int64, error) {
	query := r.db.Model(&model.PengajuanCuti{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.JenisCuti != "" {
		query = query.Where("jenis_cuti = ?", filter.JenisCuti)
	}
	if filter.Tahun > 0 {
		query = query.Where("tanggal_mulai LIKE ?", yearPrefix(filter.Tahun))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.PengajuanCuti
	err := query.Preload("User").
		Order("created_at desc").
		Scopes(paginate(filter.Pagination)).
		Find(&list).Error
	return list, total, err
}

// ListByStatus dipakai approver untuk melihat antrean pada tahapnya. Pengajuan milik approver sendiri tidak ikut.
func (r *pengajuanCutiRepository) ListByStatus(status string, exceptUserID uint) ([]model.PengajuanCuti, error) {
	var list []model.PengajuanCuti
	err := r.db.Preload("User").
		Where("status = ? AND user_id <> ?", status, exceptUserID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

// Transition mengubah status hanya bila status saat ini masih sama dengan from.
// Bila permintaan lain sudah lebih dulu mengubahnya, hasilnya ErrStaleState.
func (r *pengajuanCutiRepository) Transition(id uint, from string, changes map[string]interface{}) error {
	return guardedUpdate(r.db, id, from, changes)
}

// Approve menyetujui pengajuan dan membuat baris absensi "cuti" dalam transaksi yang sama.
// Tanggal yang sudah punya baris absensi (termasuk yang terhapus) dilewati.
func (r *pengajuanCutiRepository) Approve(id uint, from string, changes map[string]interface{}, rows []model.Absensi, audit Audit) (int, error) {
	created := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := guardedUpdate(tx, id, from, changes); err != nil {
			return err
		}
		for i := range rows {
			var count int64
			err := tx.Unscoped().Model(&model.Absensi{}).
				Where("user_id = ? AND tanggal = ?", rows[i].UserID, rows[i].Tanggal).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Omit("User").Create(&rows[i]).Error; err != nil {
				return err
			}
			if err := writeLog(tx, rows[i].ID, model.AksiCuti, nil, &rows[i], audit); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}

func guardedUpdate(db *gorm.DB, id uint, from string, changes map[string]interface{}) error {
	res := db.Model(&model.PengajuanCuti{}).
		Where("id = ? AND status = ?", id, from).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

// SumHariTahunan menjumlahkan hari kerja cuti tahunan yang masih menunggu atau sudah disetujui
// dalam satu tahun kalender (berdasarkan tanggal mulai).
func (r *pengajuanCutiRepository) SumHariTahunan(userID uint, tahun int, exceptID uint) (int, error) {
	var total int
	err := r.db.Model(&model.PengajuanCuti{}).
		Select("COALESCE(SUM(jumlah_hari), 0)").
		Where("user_id = ? AND jenis_cuti = ? AND status IN ? AND tanggal_mulai LIKE ? AND id <> ?",
			userID, model.JenisCutiTahunan, statusCutiAktif, yearPrefix(tahun), exceptID).
		Scan(&total).Error
	return total, err
}

func (r *pengajuanCutiRepository) HasOverlap(userID uint, mulai, selesai string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PengajuanCuti{}).
		Where("user_id = ? AND status IN ? AND tanggal_mulai <= ? AND tanggal_selesai >= ?",
			userID, statusCutiAktif, selesai, mulai).
		Count(&count).Error
	return count > 0, err
}

func (r *pengajuanCutiRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.PengajuanCuti{}).
		Where("status IN ?", []string{model.CutiMenungguKepalaSekolah, model.CutiMenungguHRD, model.CutiMenungguDirektur}).
		Count(&count).Error
	return count, err
}
