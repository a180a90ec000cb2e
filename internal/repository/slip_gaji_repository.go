package repository

import (
	"time"

	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

type SlipGajiFilter struct {
	UserID      uint `query:"user_id"`
	Bulan       int  `query:"bulan"`
	Tahun       int  `query:"tahun"`
	HanyaTerbit bool `query:"-"`
	Pagination
}

type SlipGajiRepository interface {
	Create(s *model.SlipGaji) error
	Update(s *model.SlipGaji) error
	GetByID(id uint) (*model.SlipGaji, error)
	List(filter SlipGajiFilter) ([]model.SlipGaji, int64, error)
	Publish(id uint, at time.Time) error
	Delete(id uint) (*model.SlipGaji, error)
	DeleteMany(ids []uint) ([]model.SlipGaji, error)
}

type slipGajiRepository struct {
	db *gorm.DB
}

func NewSlipGajiRepository(db *gorm.DB) SlipGajiRepository {
	return &slipGajiRepository{db}
}

func (r *slipGajiRepository) Create(s *model.SlipGaji) error {
	return r.db.Omit("User").Create(s).Error
}

func (r *slipGajiRepository) Update(s *model.SlipGaji) error {
	return r.db.Omit("User").Save(s).Error
}

func (r *slipGajiRepository) GetByID(id uint) (*model.SlipGaji, error) {
	var s model.SlipGaji
	err := r.db.Preload("User.ProfilePekerjaan.Jabatan").
		Preload("User.ProfilePekerjaan.Departemen").
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *slipGajiRepository) List(filter SlipGajiFilter) ([]model.SlipGaji, int64, error) {
	query := r.db.Model(&model.SlipGaji{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Bulan > 0 {
		query = query.Where("bulan = ?", filter.Bulan)
	}
	if filter.Tahun > 0 {
		query = query.Where("tahun = ?", filter.Tahun)
	}
	if filter.HanyaTerbit {
		query = query.Where("diterbitkan_pada IS NOT NULL")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.SlipGaji
	err := query.Preload("User").
		Order("tahun desc, bulan desc, id desc").
		Scopes(paginate(filter.Pagination)).
		Find(&list).Error
	return list, total, err
}

// Publish hanya berlaku untuk slip yang belum terbit.
func (r *slipGajiRepository) Publish(id uint, at time.Time) error {
	res := r.db.Model(&model.SlipGaji{}).
		Where("id = ? AND diterbitkan_pada IS NULL", id).
		Update("diterbitkan_pada", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

// Delete mengembalikan baris yang dihapus agar filenya bisa ikut dibersihkan.
func (r *slipGajiRepository) Delete(id uint) (*model.SlipGaji, error) {
	var s model.SlipGaji
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *slipGajiRepository) DeleteMany(ids []uint) ([]model.SlipGaji, error) {
	var list []model.SlipGaji
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id IN ?", ids).Find(&list).Error; err != nil {
			return err
		}
		if len(list) == 0 {
			return nil
		}
		return tx.Where("id IN ?", ids).Delete(&model.SlipGaji{}).Error
	})
	return list, err
}
