package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

type TahunAjaranRepository interface {
	GetAll() ([]model.TahunAjaran, error)
	GetByID(id uint) (*model.TahunAjaran, error)
	GetActive() (*model.TahunAjaran, error)
	Create(ta *model.TahunAjaran) error
	Update(ta *model.TahunAjaran) error
	Activate(id uint) error
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
}

type tahunAjaranRepository struct {
	db *gorm.DB
}

func NewTahunAjaranRepository(db *gorm.DB) TahunAjaranRepository {
	return &tahunAjaranRepository{db}
}

func (r *tahunAjaranRepository) GetAll() ([]model.TahunAjaran, error) {
	var list []model.TahunAjaran
	err := r.db.Order("tanggal_mulai desc").Find(&list).Error
	return list, err
}

func (r *tahunAjaranRepository) GetByID(id uint) (*model.TahunAjaran, error) {
	var ta model.TahunAjaran
	if err := r.db.First(&ta, id).Error; err != nil {
		return nil, err
	}
	return &ta, nil
}

func (r *tahunAjaranRepository) GetActive() (*model.TahunAjaran, error) {
	var ta model.TahunAjaran
	if err := r.db.Where("is_aktif = ?", true).First(&ta).Error; err != nil {
		return nil, err
	}
	return &ta, nil
}

// Create tidak pernah langsung mengaktifkan. Aktivasi hanya lewat Activate.
func (r *tahunAjaranRepository) Create(ta *model.TahunAjaran) error {
	aktif := ta.IsAktif
	ta.IsAktif = false
	if err := r.db.Create(ta).Error; err != nil {
		return err
	}
	if aktif {
		if err := r.Activate(ta.ID); err != nil {
			return err
		}
		ta.IsAktif = true
	}
	return nil
}

func (r *tahunAjaranRepository) Update(ta *model.TahunAjaran) error {
	return r.db.Omit("is_aktif").Save(ta).Error
}

// Activate menonaktifkan semua tahun ajaran lain dalam transaksi yang sama,
// sehingga paling banyak satu yang aktif.
func (r *tahunAjaranRepository) Activate(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ta model.TahunAjaran
		if err := tx.First(&ta, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.TahunAjaran{}).Where("id <> ?", id).Update("is_aktif", false).Error; err != nil {
			return err
		}
		return tx.Model(&ta).Update("is_aktif", true).Error
	})
}

func (r *tahunAjaranRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.TahunAjaran{}, id)
}

func (r *tahunAjaranRepository) DeleteMany(ids []uint) (int64, error) {
	res := r.db.Where("id IN ?", ids).Delete(&model.TahunAjaran{})
	return res.RowsAffected, res.Error
}
