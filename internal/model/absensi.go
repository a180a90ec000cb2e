package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusHadir     = "hadir"
	StatusTerlambat = "terlambat"
	StatusIzin      = "izin"
	StatusSakit     = "sakit"
	StatusCuti      = "cuti"
	StatusAlpha     = "alpha"
)

var StatusAbsensi = []string{StatusHadir, StatusTerlambat, StatusIzin, StatusSakit, StatusCuti, StatusAlpha}

// Absensi adalah catatan kehadiran harian. Satu user hanya punya satu baris per tanggal,
// termasuk baris yang sudah di-soft delete.
type Absensi struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"uniqueIndex:idx_absensi_user_tanggal;not null"`
	Tanggal         string     `json:"tanggal" gorm:"size:10;uniqueIndex:idx_absensi_user_tanggal;not null"` // Format YYYY-MM-DD
	JamMasuk        *time.Time `json:"jam_masuk"`
	JamPulang       *time.Time `json:"jam_pulang"`
	LatitudeMasuk   *float64   `json:"latitude_masuk"`
	LongitudeMasuk  *float64   `json:"longitude_masuk"`
	LatitudePulang  *float64   `json:"latitude_pulang"`
	LongitudePulang *float64   `json:"longitude_pulang"`
	JarakMasuk      *float64   `json:"jarak_masuk"` // meter dari tempat kerja
	Status          string     `json:"status" gorm:"size:20;index;not null"`
	PulangCepat     bool       `json:"pulang_cepat"`
	FilePendukung   string     `json:"file_pendukung"`
	Keterangan      string     `json:"keterangan"`
	PengajuanCutiID *uint      `json:"pengajuan_cuti_id"`

	User *User `json:"user,omitempty"`
}

func (a Absensi) SudahCheckIn() bool  { return a.JamMasuk != nil }
func (a Absensi) SudahCheckOut() bool { return a.JamPulang != nil }

// TidakMasuk true untuk status yang tidak memerlukan check-in/check-out.
func (a Absensi) TidakMasuk() bool {
	return a.Status == StatusIzin || a.Status == StatusSakit || a.Status == StatusCuti || a.Status == StatusAlpha
}

const (
	AksiCheckIn       = "check_in"
	AksiCheckOut      = "check_out"
	AksiIzin          = "izin"
	AksiBuat          = "buat"
	AksiUbah          = "ubah"
	AksiHapus         = "hapus"
	AksiPulihkan      = "pulihkan"
	AksiHapusPermanen = "hapus_permanen"
	AksiCuti          = "cuti"
)

// LogAktivitasAbsensi mencatat setiap perubahan pada Absensi. Tabel ini hanya ditambah, tidak pernah diubah.
type LogAktivitasAbsensi struct {
	ID         uint           `json:"ID" gorm:"primarykey"`
	CreatedAt  time.Time      `json:"CreatedAt"`
	AbsensiID  uint           `json:"absensi_id" gorm:"index;not null"`
	UserID     *uint          `json:"user_id" gorm:"index"` // pelaku
	Aksi       string         `json:"aksi" gorm:"size:30;not null"`
	DataLama   datatypes.JSON `json:"data_lama"`
	DataBaru   datatypes.JSON `json:"data_baru"`
	Keterangan string         `json:"keterangan"`
	IPAddress  string         `json:"ip_address" gorm:"size:45"`

	User *User `json:"user,omitempty"`
}
