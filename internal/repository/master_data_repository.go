package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

type DepartemenRepository interface {
	GetAll(search string) ([]model.Departemen, error)
	GetByID(id uint) (*model.Departemen, error)
	Create(d *model.Departemen) error
	Update(d *model.Departemen) error
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
}

type departemenRepository struct {
	db *gorm.DB
}

func NewDepartemenRepository(db *gorm.DB) DepartemenRepository {
	return &departemenRepository{db}
}

func (r *departemenRepository) GetAll(search string) ([]model.Departemen, error) {
	var list []model.Departemen
	query := r.db.Order("nama asc")
	if search != "" {
		query = query.Where("LOWER(nama) LIKE ?", likePattern(search))
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *departemenRepository) GetByID(id uint) (*model.Departemen, error) {
	var d model.Departemen
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departemenRepository) Create(d *model.Departemen) error { return r.db.Create(d).Error }
func (r *departemenRepository) Update(d *model.Departemen) error { return r.db.Save(d).Error }

// Delete juga mengosongkan referensi dari jabatan dan profil pekerjaan.
func (r *departemenRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := detachDepartemen(tx, []uint{id}); err != nil {
			return err
		}
		return deleteByID(tx, &model.Departemen{}, id)
	})
}

func (r *departemenRepository) DeleteMany(ids []uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := detachDepartemen(tx, ids); err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&model.Departemen{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func detachDepartemen(tx *gorm.DB, ids []uint) error {
	if err := tx.Model(&model.Jabatan{}).Where("departemen_id IN ?", ids).Update("departemen_id", nil).Error; err != nil {
		return err
	}
	return tx.Model(&model.ProfilePekerjaan{}).Where("departemen_id IN ?", ids).Update("departemen_id", nil).Error
}

type JabatanRepository interface {
	GetAll(search string, departemenID uint) ([]model.Jabatan, error)
	GetByID(id uint) (*model.Jabatan, error)
	Create(j *model.Jabatan) error
	Update(j *model.Jabatan) error
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
}

type jabatanRepository struct {
	db *gorm.DB
}

func NewJabatanRepository(db *gorm.DB) JabatanRepository {
	return &jabatanRepository{db}
}

func (r *jabatanRepository) GetAll(search string, departemenID uint) ([]model.Jabatan, error) {
	var list []model.Jabatan
	query := r.db.Preload("Departemen").Order("nama asc")
	if search != "" {
		query = query.Where("LOWER(nama) LIKE ?", likePattern(search))
	}
	if departemenID != 0 {
		query = query.Where("departemen_id = ?", departemenID)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *jabatanRepository) GetByID(id uint) (*model.Jabatan, error) {
	var j model.Jabatan
	if err := r.db.Preload("Departemen").First(&j, id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jabatanRepository) Create(j *model.Jabatan) error {
	return r.db.Omit("Departemen").Create(j).Error
}

func (r *jabatanRepository) Update(j *model.Jabatan) error {
	return r.db.Omit("Departemen").Save(j).Error
}

func (r *jabatanRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProfilePekerjaan{}).Where("jabatan_id = ?", id).Update("jabatan_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(tx, &model.Jabatan{}, id)
	})
}

func (r *jabatanRepository) DeleteMany(ids []uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProfilePekerjaan{}).Where("jabatan_id IN ?", ids).Update("jabatan_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&model.Jabatan{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

type TempatKerjaRepository interface {
	GetAll(search string) ([]model.TempatKerja, error)
	GetByID(id uint) (*model.TempatKerja, error)
	Create(t *model.TempatKerja) error
	Update(t *model.TempatKerja) error
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
}

type tempatKerjaRepository struct {
	db *gorm.DB
}

func NewTempatKerjaRepository(db *gorm.DB) TempatKerjaRepository {
	return &tempatKerjaRepository{db}
}

func (r *tempatKerjaRepository) GetAll(search string) ([]model.TempatKerja, error) {
	var list []model.TempatKerja
	query := r.db.Order("nama asc")
	if search != "" {
		p := likePattern(search)
		query = query.Where("LOWER(nama) LIKE ? OR LOWER(alamat) LIKE ?", p, p)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *tempatKerjaRepository) GetByID(id uint) (*model.TempatKerja, error) {
	var t model.TempatKerja
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tempatKerjaRepository) Create(t *model.TempatKerja) error { return r.db.Create(t).Error }
func (r *tempatKerjaRepository) Update(t *model.TempatKerja) error { return r.db.Save(t).Error }

func (r *tempatKerjaRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProfilePekerjaan{}).Where("tempat_kerja_id = ?", id).Update("tempat_kerja_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(tx, &model.TempatKerja{}, id)
	})
}

func (r *tempatKerjaRepository) DeleteMany(ids []uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProfilePekerjaan{}).Where("tempat_kerja_id IN ?", ids).Update("tempat_kerja_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&model.TempatKerja{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
