package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlipGaji adalah rincian gaji bulanan pegawai.
type SlipGaji struct {
	Model
	UserID          uint            `json:"user_id" gorm:"uniqueIndex:idx_slip_gaji_periode;not null"`
	Bulan           int             `json:"bulan" gorm:"uniqueIndex:idx_slip_gaji_periode;not null"`
	Tahun           int             `json:"tahun" gorm:"uniqueIndex:idx_slip_gaji_periode;not null"`
	GajiPokok       decimal.Decimal `json:"gaji_pokok" gorm:"type:decimal(15,2);not null"`
	Tunjangan       decimal.Decimal `json:"tunjangan" gorm:"type:decimal(15,2);not null"`
	Potongan        decimal.Decimal `json:"potongan" gorm:"type:decimal(15,2);not null"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(15,2);not null"`
	Keterangan      string          `json:"keterangan"`
	FilePath        string          `json:"file_path"`
	DiterbitkanPada *time.Time      `json:"diterbitkan_pada"`

	User *User `json:"user,omitempty"`
}

func (s *SlipGaji) HitungTotal() {
	s.Total = s.GajiPokok.Add(s.Tunjangan).Sub(s.Potongan)
}
