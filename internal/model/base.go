package model

import "time"

// Model sama seperti gorm.Model tanpa kolom DeletedAt.
// Dipakai untuk tabel yang punya kunci unik alami sehingga penghapusan harus permanen.
type Model struct {
	ID        uint      `json:"ID" gorm:"primarykey"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
}

// All mengembalikan semua model untuk AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Permission{},
		&Role{},
		&Departemen{},
		&Jabatan{},
		&TempatKerja{},
		&User{},
		&ProfilePribadi{},
		&ProfilePekerjaan{},
		&Device{},
		&JamKerja{},
		&HariLibur{},
		&TahunAjaran{},
		&PengajuanCuti{},
		&Absensi{},
		&LogAktivitasAbsensi{},
		&Evaluasi{},
		&SlipGaji{},
	}
}
