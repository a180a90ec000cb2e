package usecase

import (
	"math"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/idlist"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

type EvaluasiRequest struct {
	UserID        uint     `json:"user_id" validate:"required"`
	TahunAjaranID uint     `json:"tahun_ajaran_id"` // 0 = tahun ajaran aktif
	Semester      string   `json:"semester" validate:"required,oneof=ganjil genap"`
	Kategori      string   `json:"kategori" validate:"required,notblank,max=100"`
	Skor          *float64 `json:"skor" validate:"required,gte=0,lte=100"`
	Catatan       string   `json:"catatan" validate:"max=1000"`
}

type RingkasanEvaluasi struct {
	UserID         uint             `json:"user_id"`
	TahunAjaranID  uint             `json:"tahun_ajaran_id"`
	Semester       string           `json:"semester"`
	Items          []model.Evaluasi `json:"items"`
	JumlahKategori int              `json:"jumlah_kategori"`
	RataRata       float64          `json:"rata_rata"`
	Predikat       string           `json:"predikat"`
}

// Predikat mengubah nilai rata-rata menjadi huruf.
func Predikat(nilai float64) string {
	switch {
	case nilai >= 90:
		return "A"
	case nilai >= 80:
		return "B"
	case nilai >= 70:
		return "C"
	case nilai >= 60:
		return "D"
	default:
		return "E"
	}
}

type EvaluasiUsecase struct {
	repo        repository.EvaluasiRepository
	users       repository.UserRepository
	tahunAjaran repository.TahunAjaranRepository
}

func NewEvaluasiUsecase(repo repository.EvaluasiRepository, users repository.UserRepository, tahunAjaran repository.TahunAjaranRepository) *EvaluasiUsecase {
	return &EvaluasiUsecase{repo: repo, users: users, tahunAjaran: tahunAjaran}
}

func (u *EvaluasiUsecase) resolveTahunAjaran(id uint) (uint, error) {
	if id != 0 {
		if _, err := u.tahunAjaran.GetByID(id); err != nil {
			if repository.IsNotFound(err) {
				return 0, apperror.Field("tahun_ajaran_id", "tahun ajaran tidak ditemukan")
			}
			return 0, internal(err, "find tahun ajaran")
		}
		return id, nil
	}
	aktif, err := u.tahunAjaran.GetActive()
	if err != nil {
		if repository.IsNotFound(err) {
			return 0, apperror.Field("tahun_ajaran_id", "belum ada tahun ajaran aktif")
		}
		return 0, internal(err, "find tahun ajaran aktif")
	}
	return aktif.ID, nil
}

func (u *EvaluasiUsecase) prepare(req EvaluasiRequest) (uint, error) {
	if err := validation.Struct(req); err != nil {
		return 0, err
	}
	if _, err := u.users.FindByID(req.UserID); err != nil {
		if repository.IsNotFound(err) {
			return 0, apperror.Field("user_id", "pegawai tidak ditemukan")
		}
		return 0, internal(err, "find user")
	}
	return u.resolveTahunAjaran(req.TahunAjaranID)
}

func duplikatEvaluasi(err error, op string) error {
	if repository.IsDuplicateKey(err) {
		return apperror.Field("kategori", "kategori ini sudah dinilai untuk periode tersebut")
	}
	return internal(err, op)
}

// Create menyimpan nilai dengan penilai = user yang login.
func (u *EvaluasiUsecase) Create(penilaiID uint, req EvaluasiRequest) (*model.Evaluasi, error) {
	taID, err := u.prepare(req)
	if err != nil {
		return nil, err
	}
	e := &model.Evaluasi{
		UserID:        req.UserID,
		PenilaiID:     penilaiID,
		TahunAjaranID: taID,
		Semester:      req.Semester,
		Kategori:      req.Kategori,
		Skor:          *req.Skor,
		Catatan:       req.Catatan,
	}
	if err := u.repo.Create(e); err != nil {
		return nil, duplikatEvaluasi(err, "create evaluasi")
	}
	return u.Get(e.ID)
}

func (u *EvaluasiUsecase) Update(id, penilaiID uint, req EvaluasiRequest) (*model.Evaluasi, error) {
	e, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	taID, err := u.prepare(req)
	if err != nil {
		return nil, err
	}
	e.UserID = req.UserID
	e.PenilaiID = penilaiID
	e.TahunAjaranID = taID
	e.Semester = req.Semester
	e.Kategori = req.Kategori
	e.Skor = *req.Skor
	e.Catatan = req.Catatan
	if err := u.repo.Update(e); err != nil {
		return nil, duplikatEvaluasi(err, "update evaluasi")
	}
	return u.Get(id)
}

func (u *EvaluasiUsecase) Get(id uint) (*model.Evaluasi, error) {
	e, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Evaluasi tidak ditemukan", "get evaluasi")
	}
	return e, nil
}

func (u *EvaluasiUsecase) List(filter repository.EvaluasiFilter) ([]model.Evaluasi, int64, error) {
	list, total, err := u.repo.List(filter)
	if err != nil {
		return nil, 0, internal(err, "list evaluasi")
	}
	return list, total, nil
}

func (u *EvaluasiUsecase) Delete(id uint) error {
	if err := u.repo.Delete(id); err != nil {
		return notFoundOr(err, "Evaluasi tidak ditemukan", "delete evaluasi")
	}
	return nil
}

func (u *EvaluasiUsecase) BulkDelete(raw string) (int64, error) {
	ids, err := idlist.Parse(raw)
	if err != nil {
		return 0, apperror.Field("ids", err.Error())
	}
	n, err := u.repo.DeleteMany(ids)
	if err != nil {
		return 0, internal(err, "bulk delete evaluasi")
	}
	return n, nil
}

// Ringkasan menghitung rata-rata semua kategori dan predikatnya.
func (u *EvaluasiUsecase) Ringkasan(userID, tahunAjaranID uint, semester string) (*RingkasanEvaluasi, error) {
	if semester != model.SemesterGanjil && semester != model.SemesterGenap {
		return nil, apperror.Field("semester", "semester harus ganjil atau genap")
	}
	taID, err := u.resolveTahunAjaran(tahunAjaranID)
	if err != nil {
		return nil, err
	}
	items, err := u.repo.ForPeriod(userID, taID, semester)
	if err != nil {
		return nil, internal(err, "ringkasan evaluasi")
	}

	r := &RingkasanEvaluasi{
		UserID:         userID,
		TahunAjaranID:  taID,
		Semester:       semester,
		Items:          items,
		JumlahKategori: len(items),
	}
	if len(items) == 0 {
		r.Items = []model.Evaluasi{}
		r.Predikat = "-"
		return r, nil
	}
	var total float64
	for _, e := range items {
		total += e.Skor
	}
	r.RataRata = math.Round(total/float64(len(items))*100) / 100
	r.Predikat = Predikat(r.RataRata)
	return r, nil
}
