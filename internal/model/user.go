package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Nama     string `json:"nama" gorm:"size:150;not null"`
	Email    string `json:"email" gorm:"size:150;uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	IsActive bool   `json:"is_active"`

	// Relasi
	Roles            []Role            `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	ProfilePribadi   *ProfilePribadi   `json:"profile_pribadi,omitempty"`
	ProfilePekerjaan *ProfilePekerjaan `json:"profile_pekerjaan,omitempty"`
	Devices          []Device          `json:"-"`
}

// RoleNames mengembalikan nama-nama role milik user (Roles harus sudah di-preload).
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.NamaRole)
	}
	return names
}

func (u User) HasRole(names ...string) bool {
	for _, r := range u.Roles {
		for _, n := range names {
			if r.NamaRole == n {
				return true
			}
		}
	}
	return false
}

// ProfilePribadi menyimpan data pribadi pegawai (1:1 dengan User).
type ProfilePribadi struct {
	Model
	UserID       uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	NIK          string `json:"nik" gorm:"column:nik;size:16;uniqueIndex;not null"`
	TempatLahir  string `json:"tempat_lahir" gorm:"size:100"`
	TanggalLahir string `json:"tanggal_lahir" gorm:"size:10"` // Format YYYY-MM-DD
	JenisKelamin string `json:"jenis_kelamin" gorm:"size:1"`  // L / P
	Agama        string `json:"agama" gorm:"size:20"`
	Alamat       string `json:"alamat"`
	NoHP         string `json:"no_hp" gorm:"size:20"`
	Foto         string `json:"foto"`
}

// ProfilePekerjaan menyimpan data kepegawaian (1:1 dengan User).
type ProfilePekerjaan struct {
	Model
	UserID            uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	NIP               string `json:"nip" gorm:"column:nip;size:30;uniqueIndex;not null"`
	DepartemenID      *uint  `json:"departemen_id"`
	JabatanID         *uint  `json:"jabatan_id"`
	TempatKerjaID     *uint  `json:"tempat_kerja_id"`
	StatusKepegawaian string `json:"status_kepegawaian" gorm:"size:20"` // tetap, kontrak, honorer
	TanggalMasuk      string `json:"tanggal_masuk" gorm:"size:10"`

	Departemen  *Departemen  `json:"departemen,omitempty"`
	Jabatan     *Jabatan     `json:"jabatan,omitempty"`
	TempatKerja *TempatKerja `json:"tempat_kerja,omitempty"`
}

const (
	StatusPegawaiTetap   = "tetap"
	StatusPegawaiKontrak = "kontrak"
	StatusPegawaiHonorer = "honorer"
)

// Device menyimpan perangkat login pegawai untuk push notification.
type Device struct {
	Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	UUID          string `json:"uuid" gorm:"size:100;uniqueIndex;not null"` // Token unik dari perangkat
	Brand         string `json:"brand"`                                     // Contoh: Samsung, Xiaomi
	Series        string `json:"series"`
	FirebaseToken string `json:"firebase_token"`
}
