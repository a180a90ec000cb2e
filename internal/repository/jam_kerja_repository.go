package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JamKerjaRepository interface {
	GetAll(roleID uint) ([]model.JamKerja, error)
	GetByID(id uint) (*model.JamKerja, error)
	Upsert(jk *model.JamKerja) error
	Update(jk *model.JamKerja) error
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
	FindForRoles(roleIDs []uint, hari int) ([]model.JamKerja, error)
}

type jamKerjaRepository struct {
	db *gorm.DB
}

func NewJamKerjaRepository(db *gorm.DB) JamKerjaRepository {
	return &jamKerjaRepository{db}
}

func (r *jamKerjaRepository) GetAll(roleID uint) ([]model.JamKerja, error) {
	var list []model.JamKerja
	query := r.db.Preload("Role").Order("role_id asc, hari asc")
	if roleID != 0 {
		query = query.Where("role_id = ?", roleID)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *jamKerjaRepository) GetByID(id uint) (*model.JamKerja, error) {
	var jk model.JamKerja
	if err := r.db.Preload("Role").First(&jk, id).Error; err != nil {
		return nil, err
	}
	return &jk, nil
}

// Upsert menimpa jadwal yang sudah ada untuk pasangan role + hari yang sama.
func (r *jamKerjaRepository) Upsert(jk *model.JamKerja) error {
	return r.db.Omit("Role").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_id"}, {Name: "hari"}},
		DoUpdates: clause.AssignmentColumns([]string{"jam_masuk", "jam_pulang", "is_libur", "updated_at"}),
	}).Create(jk).Error
}

func (r *jamKerjaRepository) Update(jk *model.JamKerja) error {
	return r.db.Omit("Role").Save(jk).Error
}

func (r *jamKerjaRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.JamKerja{}, id)
}

func (r *jamKerjaRepository) DeleteMany(ids []uint) (int64, error) {
	res := r.db.Where("id IN ?", ids).Delete(&model.JamKerja{})
	return res.RowsAffected, res.Error
}

func (r *jamKerjaRepository) FindForRoles(roleIDs []uint, hari int) ([]model.JamKerja, error) {
	var list []model.JamKerja
	if len(roleIDs) == 0 {
		return list, nil
	}
	err := r.db.Where("role_id IN ? AND hari = ?", roleIDs, hari).Find(&list).Error
	return list, err
}
