package main

import (
	"fmt"
	"log"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/database"
)

func main() {
	fmt.Println("🌱 Memulai Database Seeding...")

	// .env dibaca manual karena ini script terpisah dari server
	config.LoadEnv()

	dbCfg := config.LoadDatabaseConfig()
	if err := dbCfg.Validate(); err != nil {
		log.Fatalf("Konfigurasi database tidak valid: %v", err)
	}
	db, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("%+v", err)
	}

	fmt.Println("🚀 Menjalankan SeedAll...")
	err = database.SeedAll(db, database.SeedConfig{
		AdminNama:     config.GetEnv("SEED_ADMIN_NAMA", "Super Admin"),
		AdminEmail:    config.GetEnv("SEED_ADMIN_EMAIL", "admin@yayasan.sch.id"),
		AdminPassword: config.GetEnv("SEED_ADMIN_PASSWORD", ""),
	})
	if err != nil {
		log.Fatalf("Seeding gagal: %+v", err)
	}

	fmt.Println("✅ Seeding Selesai!")
}
