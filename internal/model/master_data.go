package model

type Departemen struct {
	Model
	Nama       string `json:"nama" gorm:"size:100;uniqueIndex;not null"`
	Keterangan string `json:"keterangan"`
}

type Jabatan struct {
	Model
	Nama         string      `json:"nama" gorm:"size:100;uniqueIndex;not null"`
	DepartemenID *uint       `json:"departemen_id"`
	Departemen   *Departemen `json:"departemen,omitempty"`
}

// TempatKerja adalah titik koordinat kantor/sekolah tempat pegawai absen.
type TempatKerja struct {
	Model
	Nama        string  `json:"nama" gorm:"size:150;uniqueIndex;not null"`
	Alamat      string  `json:"alamat"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusMeter float64 `json:"radius_meter" gorm:"default:500"`
}

// JamKerja adalah jadwal mingguan per role. Hari mengikuti time.Weekday (0 = Minggu).
type JamKerja struct {
	Model
	RoleID    uint   `json:"role_id" gorm:"uniqueIndex:idx_jam_kerja_role_hari;not null"`
	Hari      int    `json:"hari" gorm:"uniqueIndex:idx_jam_kerja_role_hari"`
	JamMasuk  string `json:"jam_masuk" gorm:"size:5"`  // Format "07:00"
	JamPulang string `json:"jam_pulang" gorm:"size:5"` // Format "15:00"
	IsLibur   bool   `json:"is_libur"`
	Role      *Role  `json:"role,omitempty"`
}

type HariLibur struct {
	Model
	Tanggal    string `json:"tanggal" gorm:"size:10;uniqueIndex;not null"` // Format YYYY-MM-DD
	Keterangan string `json:"keterangan"`
}

type TahunAjaran struct {
	Model
	Nama           string `json:"nama" gorm:"size:20;uniqueIndex;not null"` // Contoh: 2025/2026
	TanggalMulai   string `json:"tanggal_mulai" gorm:"size:10"`
	TanggalSelesai string `json:"tanggal_selesai" gorm:"size:10"`
	IsAktif        bool   `json:"is_aktif"`
}

var NamaHari = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
