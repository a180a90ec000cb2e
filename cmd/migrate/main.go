package main

import (
	"fmt"
	"log"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/database"
)

func main() {
	fmt.Println("Memulai migrasi database...")
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
	fmt.Println("Migrasi selesai!")
}
