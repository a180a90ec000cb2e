package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

type HariLiburRepository interface {
	GetAll(tahun int) ([]model.HariLibur, error)
	GetByID(id uint) (*model.HariLibur, error)
	Create(libur *model.HariLibur) error
	Update(libur *model.HariLibur) error
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
	IsHoliday(date string) (bool, error)
	InRange(start, end string) (map[string]bool, error)
}

type hariLiburRepository struct {
	db *gorm.DB
}

func NewHariLiburRepository(db *gorm.DB) HariLiburRepository {
	return &hariLiburRepository{db}
}

// GetAll dengan tahun 0 mengembalikan semua hari libur.
func (r *hariLiburRepository) GetAll(tahun int) ([]model.HariLibur, error) {
	var liburs []model.HariLibur
	query := r.db.Order("tanggal desc")
	if tahun > 0 {
		query = query.Where("tanggal LIKE ?", yearPrefix(tahun))
	}
	err := query.Find(&liburs).Error
	return liburs, err
}

func (r *hariLiburRepository) GetByID(id uint) (*model.HariLibur, error) {
	var libur model.HariLibur
	if err := r.db.First(&libur, id).Error; err != nil {
		return nil, err
	}
	return &libur, nil
}

func (r *hariLiburRepository) Create(libur *model.HariLibur) error {
	return r.db.Create(libur).Error
}

func (r *hariLiburRepository) Update(libur *model.HariLibur) error {
	return r.db.Save(libur).Error
}

func (r *hariLiburRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.HariLibur{}, id)
}

func (r *hariLiburRepository) DeleteMany(ids []uint) (int64, error) {
	res := r.db.Where("id IN ?", ids).Delete(&model.HariLibur{})
	return res.RowsAffected, res.Error
}

func (r *hariLiburRepository) IsHoliday(date string) (bool, error) {
	var count int64
	err := r.db.Model(&model.HariLibur{}).Where("tanggal = ?", date).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InRange mengembalikan set tanggal libur di antara start dan end (inklusif).
func (r *hariLiburRepository) InRange(start, end string) (map[string]bool, error) {
	return holidaysBetween(r.db, start, end)
}

func holidaysBetween(db *gorm.DB, start, end string) (map[string]bool, error) {
	var dates []string
	err := db.Model(&model.HariLibur{}).
		Where("tanggal BETWEEN ? AND ?", start, end).
		Pluck("tanggal", &dates).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set, nil
}
