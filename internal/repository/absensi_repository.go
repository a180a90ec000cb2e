package repository

import (
	"encoding/json"
	"time"

	"sdm-yayasan-backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TrashedWith = "with"
	TrashedOnly = "only"
)

type AbsensiFilter struct {
	Tanggal string `query:"tanggal"`
	UserID  uint   `query:"user_id"`
	Status  string `query:"status"`
	Trashed string `query:"trashed"`
	Bulan   int    `query:"bulan"`
	Tahun   int    `query:"tahun"`
	Pagination
}

// Audit adalah informasi pelaku yang ikut tercatat di log aktivitas.
type Audit struct {
	ActorID    *uint
	IPAddress  string
	Keterangan string
}

type AbsensiRepository interface {
	FindByUserAndDate(userID uint, tanggal string, withTrashed bool) (*model.Absensi, error)
	GetByID(id uint, withTrashed bool) (*model.Absensi, error)
	List(filter AbsensiFilter) ([]model.Absensi, int64, error)
	ListByUserMonth(userID uint, tahun, bulan int) ([]model.Absensi, error)
	Create(absensi *model.Absensi, aksi string, audit Audit) error
	Update(absensi *model.Absensi, audit Audit) error
	CheckOut(id uint, jamPulang time.Time, lat, lon float64, pulangCepat bool, audit Audit) (*model.Absensi, error)
	SoftDelete(id uint, audit Audit) error
	Restore(id uint, audit Audit) error
	ForceDelete(id uint, audit Audit) error
	DeleteMany(ids []uint, audit Audit) (int64, error)
	Logs(absensiID uint) ([]model.LogAktivitasAbsensi, error)
	CountByStatus(tanggal string) (map[string]int64, error)
}

type absensiRepository struct {
	db *gorm.DB
}

func NewAbsensiRepository(db *gorm.DB) AbsensiRepository {
	return &absensiRepository{db}
}

// FindByUserAndDate dengan withTrashed true ikut melihat baris yang sudah dihapus,
// dipakai untuk memastikan satu user hanya punya satu baris per tanggal.
func (r *absensiRepository) FindByUserAndDate(userID uint, tanggal string, withTrashed bool) (*model.Absensi, error) {
	var absensi model.Absensi
	query := r.db
	if withTrashed {
		query = query.Unscoped()
	}
	if err := query.Where("user_id = ? AND tanggal = ?", userID, tanggal).First(&absensi).Error; err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *absensiRepository) GetByID(id uint, withTrashed bool) (*model.Absensi, error) {
	var absensi model.Absensi
	query := r.db.Preload("User")
	if withTrashed {
		query = query.Unscoped()
	}
	if err := query.First(&absensi, id).Error; err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *absensiRepository) List(filter AbsensiFilter) ([]model.Absensi, int64, error) {
	query := r.db.Model(&model.Absensi{})
	switch filter.Trashed {
	case TrashedWith:
		query = query.Unscoped()
	case TrashedOnly:
		query = query.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if filter.Tanggal != "" {
		query = query.Where("tanggal = ?", filter.Tanggal)
	} else if filter.Tahun > 0 && filter.Bulan > 0 {
		query = query.Where("tanggal LIKE ?", monthPrefix(filter.Tahun, filter.Bulan))
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Absensi
	err := query.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("tanggal desc, id desc").
		Scopes(paginate(filter.Pagination)).
		Find(&list).Error
	return list, total, err
}

func (r *absensiRepository) ListByUserMonth(userID uint, tahun, bulan int) ([]model.Absensi, error) {
	var list []model.Absensi
	err := r.db.Where("user_id = ? AND tanggal LIKE ?", userID, monthPrefix(tahun, bulan)).
		Order("tanggal asc").
		Find(&list).Error
	return list, err
}

// Create menyimpan baris absensi beserta log aktivitasnya dalam satu transaksi.
// Unique index (user_id, tanggal) menjadi penjaga terakhir dari check-in ganda.
func (r *absensiRepository) Create(absensi *model.Absensi, aksi string, audit Audit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(absensi).Error; err != nil {
			return err
		}
		return writeLog(tx, absensi.ID, aksi, nil, absensi, audit)
	})
}

func (r *absensiRepository) Update(absensi *model.Absensi, audit Audit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var old model.Absensi
		if err := tx.First(&old, absensi.ID).Error; err != nil {
			return err
		}
		if err := tx.Omit("User").Save(absensi).Error; err != nil {
			return err
		}
		return writeLog(tx, absensi.ID, model.AksiUbah, &old, absensi, audit)
	})
}

// CheckOut hanya berhasil satu kali per baris. Permintaan kedua mendapat ErrStaleState.
func (r *absensiRepository) CheckOut(id uint, jamPulang time.Time, lat, lon float64, pulangCepat bool, audit Audit) (*model.Absensi, error) {
	var updated model.Absensi
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var old model.Absensi
		if err := tx.First(&old, id).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Absensi{}).
			Where("id = ? AND jam_pulang IS NULL", id).
			Updates(map[string]interface{}{
				"jam_pulang":       jamPulang,
				"latitude_pulang":  lat,
				"longitude_pulang": lon,
				"pulang_cepat":     pulangCepat,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleState
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		return writeLog(tx, id, model.AksiCheckOut, &old, &updated, audit)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *absensiRepository) SoftDelete(id uint, audit Audit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var old model.Absensi
		if err := tx.First(&old, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&old).Error; err != nil {
			return err
		}
		return writeLog(tx, id, model.AksiHapus, &old, nil, audit)
	})
}

func (r *absensiRepository) Restore(id uint, audit Audit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var old model.Absensi
		if err := tx.Unscoped().Where("deleted_at IS NOT NULL").First(&old, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Model(&old).Update("deleted_at", nil).Error; err != nil {
			return err
		}
		restored := old
		restored.DeletedAt = gorm.DeletedAt{}
		return writeLog(tx, id, model.AksiPulihkan, &old, &restored, audit)
	})
}

// ForceDelete menghapus baris secara permanen. Log aktivitasnya tetap disimpan.
func (r *absensiRepository) ForceDelete(id uint, audit Audit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var old model.Absensi
		if err := tx.Unscoped().First(&old, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&old).Error; err != nil {
			return err
		}
		return writeLog(tx, id, model.AksiHapusPermanen, &old, nil, audit)
	})
}

// DeleteMany melakukan soft delete untuk setiap id dan mencatat lognya satu per satu.
func (r *absensiRepository) DeleteMany(ids []uint, audit Audit) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var rows []model.Absensi
		if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		found := make([]uint, 0, len(rows))
		for _, row := range rows {
			found = append(found, row.ID)
		}
		res := tx.Where("id IN ?", found).Delete(&model.Absensi{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		for i := range rows {
			if err := writeLog(tx, rows[i].ID, model.AksiHapus, &rows[i], nil, audit); err != nil {
				return err
			}
		}
		return nil
	})
	return affected, err
}

func (r *absensiRepository) Logs(absensiID uint) ([]model.LogAktivitasAbsensi, error) {
	var logs []model.LogAktivitasAbsensi
	err := r.db.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("absensi_id = ?", absensiID).
		Order("id asc").
		Find(&logs).Error
	return logs, err
}

func (r *absensiRepository) CountByStatus(tanggal string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.Model(&model.Absensi{}).
		Select("status, count(*) as total").
		Where("tanggal = ?", tanggal).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(model.StatusAbsensi))
	for _, s := range model.StatusAbsensi {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// writeLog harus dipanggil dengan tx yang sama dengan perubahan datanya.
func writeLog(tx *gorm.DB, absensiID uint, aksi string, before, after *model.Absensi, audit Audit) error {
	entry := model.LogAktivitasAbsensi{
		AbsensiID:  absensiID,
		UserID:     audit.ActorID,
		Aksi:       aksi,
		Keterangan: audit.Keterangan,
		IPAddress:  audit.IPAddress,
	}
	var err error
	if entry.DataLama, err = snapshot(before); err != nil {
		return err
	}
	if entry.DataBaru, err = snapshot(after); err != nil {
		return err
	}
	return tx.Create(&entry).Error
}

func snapshot(a *model.Absensi) (datatypes.JSON, error) {
	if a == nil {
		return nil, nil
	}
	c := *a
	c.User = nil
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
