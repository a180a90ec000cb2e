package model

const (
	SemesterGanjil = "ganjil"
	SemesterGenap  = "genap"
)

// Evaluasi adalah nilai kinerja satu kategori untuk pegawai pada satu semester.
type Evaluasi struct {
	Model
	UserID        uint    `json:"user_id" gorm:"uniqueIndex:idx_evaluasi_periode_kategori;not null"`
	PenilaiID     uint    `json:"penilai_id" gorm:"index;not null"`
	TahunAjaranID uint    `json:"tahun_ajaran_id" gorm:"uniqueIndex:idx_evaluasi_periode_kategori;not null"`
	Semester      string  `json:"semester" gorm:"size:10;uniqueIndex:idx_evaluasi_periode_kategori;not null"`
	Kategori      string  `json:"kategori" gorm:"size:100;uniqueIndex:idx_evaluasi_periode_kategori;not null"`
	Skor          float64 `json:"skor"`
	Catatan       string  `json:"catatan"`

	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Penilai     *User        `json:"penilai,omitempty" gorm:"foreignKey:PenilaiID"`
	TahunAjaran *TahunAjaran `json:"tahun_ajaran,omitempty"`
}
