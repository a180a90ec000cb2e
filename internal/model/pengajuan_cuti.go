package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	CutiMenungguKepalaSekolah = "menunggu_kepala_sekolah"
	CutiMenungguHRD           = "menunggu_hrd"
	CutiMenungguDirektur      = "menunggu_direktur"
	CutiDisetujui             = "disetujui"
	CutiDitolak               = "ditolak"
	CutiDibatalkan            = "dibatalkan"
)

const (
	JenisCutiTahunan    = "tahunan"
	JenisCutiSakit      = "sakit"
	JenisCutiMelahirkan = "melahirkan"
	JenisCutiPenting    = "alasan_penting"
	JenisCutiLainnya    = "lainnya"
)

var JenisCuti = []string{JenisCutiTahunan, JenisCutiSakit, JenisCutiMelahirkan, JenisCutiPenting, JenisCutiLainnya}

// PengajuanCuti adalah permohonan cuti yang berjalan melewati rantai persetujuan.
type PengajuanCuti struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	JenisCuti      string `json:"jenis_cuti" gorm:"size:30;not null"`
	TanggalMulai   string `json:"tanggal_mulai" gorm:"size:10;not null"`
	TanggalSelesai string `json:"tanggal_selesai" gorm:"size:10;not null"`
	JumlahHari     int    `json:"jumlah_hari"` // hari kerja
	Alasan         string `json:"alasan"`
	FilePendukung  string `json:"file_pendukung"`
	Status         string `json:"status" gorm:"size:40;index;not null"`

	KepalaSekolahID      *uint      `json:"kepala_sekolah_id"`
	CatatanKepalaSekolah string     `json:"catatan_kepala_sekolah"`
	WaktuKepalaSekolah   *time.Time `json:"waktu_kepala_sekolah"`
	HrdID                *uint      `json:"hrd_id"`
	CatatanHrd           string     `json:"catatan_hrd"`
	WaktuHrd             *time.Time `json:"waktu_hrd"`
	DirekturID           *uint      `json:"direktur_id"`
	CatatanDirektur      string     `json:"catatan_direktur"`
	WaktuDirektur        *time.Time `json:"waktu_direktur"`

	// Relasi untuk Preload data pemohon
	User *User `json:"user,omitempty"`
}

func (p PengajuanCuti) Menunggu() bool {
	return p.Status == CutiMenungguKepalaSekolah || p.Status == CutiMenungguHRD || p.Status == CutiMenungguDirektur
}
