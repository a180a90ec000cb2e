package database

import (
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"sdm-yayasan-backend/internal/model"
)

// Migrate menjalankan AutoMigrate untuk seluruh tabel aplikasi.
func Migrate(db *gorm.DB) error {
	log.Println("Menjalankan AutoMigrate...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	log.Println("AutoMigrate selesai")
	return nil
}
