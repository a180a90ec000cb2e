package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

type EvaluasiFilter struct {
	UserID        uint   `query:"user_id"`
	TahunAjaranID uint   `query:"tahun_ajaran_id"`
	Semester      string `query:"semester"`
	Pagination
}

type EvaluasiRepository interface {
	Create(e *model.Evaluasi) error
	Update(e *model.Evaluasi) error
	GetByID(id uint) (*model.Evaluasi, error)
	List(filter EvaluasiFilter) ([]model.Evaluasi, int64, error)
	ForPeriod(userID, tahunAjaranID uint, semester string) ([]model.Evaluasi, error)
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
}

type evaluasiRepository struct {
	db *gorm.DB
}

func NewEvaluasiRepository(db *gorm.DB) EvaluasiRepository {
	return &evaluasiRepository{db}
}

func (r *evaluasiRepository) Create(e *model.Evaluasi) error {
	return r.db.Omit("User", "Penilai", "TahunAjaran").Create(e).Error
}

func (r *evaluasiRepository) Update(e *model.Evaluasi) error {
	return r.db.Omit("User", "Penilai", "TahunAjaran").Save(e).Error
}

func (r *evaluasiRepository) GetByID(id uint) (*model.Evaluasi, error) {
	var e model.Evaluasi
	err := r.db.Preload("User").Preload("Penilai").Preload("TahunAjaran").First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *evaluasiRepository) List(filter EvaluasiFilter) ([]model.Evaluasi, int64, error) {
	query := r.db.Model(&model.Evaluasi{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.TahunAjaranID != 0 {
		query = query.Where("tahun_ajaran_id = ?", filter.TahunAjaranID)
	}
	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Evaluasi
	err := query.Preload("User").Preload("Penilai").Preload("TahunAjaran").
		Order("id desc").
		Scopes(paginate(filter.Pagination)).
		Find(&list).Error
	return list, total, err
}

func (r *evaluasiRepository) ForPeriod(userID, tahunAjaranID uint, semester string) ([]model.Evaluasi, error) {
	var list []model.Evaluasi
	err := r.db.Preload("Penilai").
		Where("user_id = ? AND tahun_ajaran_id = ? AND semester = ?", userID, tahunAjaranID, semester).
		Order("kategori asc").
		Find(&list).Error
	return list, err
}

func (r *evaluasiRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Evaluasi{}, id)
}

func (r *evaluasiRepository) DeleteMany(ids []uint) (int64, error) {
	res := r.db.Where("id IN ?", ids).Delete(&model.Evaluasi{})
	return res.RowsAffected, res.Error
}
