// Package usecase berisi aturan bisnis. Handler HTTP dan panel admin memanggil package ini,
// dan package ini memanggil repository.
package usecase

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/repository"
)

const (
	layoutTanggal = "2006-01-02"
	layoutJam     = "15:04"
)

const pesanServerError = "Terjadi kesalahan pada server"

// Clock dipakai agar waktu "sekarang" bisa diganti di test.
type Clock func() time.Time

// internal membungkus error infrastruktur. Pesan aslinya hanya masuk log.
func internal(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	wrapped := errors.Wrap(err, op)
	log.Printf("ERROR %v", wrapped)
	return apperror.Internal(pesanServerError, wrapped)
}

// notFoundOr mengubah record-not-found menjadi 404 dengan pesan yang diberikan.
func notFoundOr(err error, message, op string) error {
	if repository.IsNotFound(err) {
		return apperror.NotFound(message)
	}
	return internal(err, op)
}

func parseTanggal(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layoutTanggal, s, loc)
}

// gabungJam menggabungkan tanggal dan "HH:MM" menjadi satu waktu di zona loc.
func gabungJam(tanggal time.Time, jam string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layoutJam, jam, loc)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := tanggal.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}

func uintPtr(v uint) *uint { return &v }
