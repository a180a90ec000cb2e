package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/database"
	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/pkg/cache"
	"sdm-yayasan-backend/internal/pkg/notify"
	"sdm-yayasan-backend/internal/pkg/storage"
	"sdm-yayasan-backend/internal/pkg/token"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/routes"
	"sdm-yayasan-backend/internal/usecase"
)

func main() {
	fmt.Println("1. Memulai aplikasi... Membaca konfigurasi...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Konfigurasi tidak valid: %v", err)
	}

	fmt.Println("2. Mencoba koneksi ke Database...")
	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if config.GetEnvAsBool("DB_AUTO_MIGRATE", true) {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	fmt.Println("3. Database berhasil terhubung! Menyiapkan layanan pendukung...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Gagal menyiapkan storage: %+v", err)
	}
	permCache, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		// tanpa redis permission tetap dibaca dari database
		log.Printf("Warning: Redis tidak tersedia, cache permission dimatikan: %v", err)
		permCache = cache.Noop{}
	}
	pusher, err := notify.NewPusher(ctx, cfg.Firebase)
	if err != nil {
		log.Printf("Warning: Firebase gagal diinisialisasi, push notifikasi hanya dicatat: %v", err)
		pusher = notify.LogPusher{}
	}

	users := repository.NewUserRepository(db)
	bus := notify.NewBus(100)
	notifier := notify.NewNotifier(users, notify.NewMailer(cfg.Email), pusher)
	notifierDone := make(chan struct{})
	go func() {
		defer close(notifierDone)
		notifier.Start(ctx, bus.Events())
	}()

	deps := &routes.Dependencies{
		DB:          db,
		Config:      cfg,
		Tokens:      token.NewManager(cfg.JWT),
		Permissions: usecase.NewPermissionService(users, permCache),
		Storage:     store,
		Events:      bus,
		Sessions:    middleware.NewAdminSessionStore(cfg.Session),
	}

	fmt.Println("4. Menyiapkan routes...")
	app := fiber.New(fiber.Config{
		AppName:      "SDM Yayasan",
		BodyLimit:    storage.MaxUploadSize + 1024*1024,
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware Global
	app.Use(recover.New())
	app.Use(cors.New())   // Agar API bisa diakses dari domain/port lain
	app.Use(logger.New()) // Agar log request muncul di terminal (Debugging)

	// Serve file upload lokal (foto, dokumen izin, slip gaji)
	if local, ok := store.(*storage.LocalStorage); ok {
		app.Static(cfg.Storage.PublicURL, local.Root())
	}

	routes.Setup(app, deps)

	go func() {
		<-ctx.Done()
		fmt.Println("Menerima sinyal berhenti, mematikan server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown server gagal: %v", err)
		}
	}()

	fmt.Printf("5. Server siap! Menunggu request di port :%s\n", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server berhenti: %v", err)
	}

	stop()
	<-notifierDone
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	fmt.Println("Server berhenti dengan rapi")
}
