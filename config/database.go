package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type DatabaseConfig struct {
	Driver   string // mysql | postgres
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	LogLevel string
}

func LoadDatabaseConfig() DatabaseConfig {
	driver := strings.ToLower(GetEnv("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}
	return DatabaseConfig{
		Driver:   driver,
		Host:     GetEnv("DB_HOST", "127.0.0.1"),
		Port:     GetEnv("DB_PORT", defaultPort),
		User:     GetEnv("DB_USER", "root"),
		Password: GetEnv("DB_PASS", ""),
		Name:     GetEnv("DB_NAME", "sdm_yayasan"),
		SSLMode:  GetEnv("DB_SSLMODE", "disable"),
		LogLevel: strings.ToLower(GetEnv("DB_LOG_LEVEL", "warn")),
	}
}

func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER %q tidak didukung (mysql|postgres)", c.Driver)
	}
	if c.Host == "" || c.Name == "" || c.User == "" {
		return errors.New("DB_HOST, DB_USER, dan DB_NAME wajib diisi")
	}
	return nil
}

// DSN menyusun connection string sesuai driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Jakarta",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	}
	// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func (c DatabaseConfig) gormLogLevel() logger.LogLevel {
	switch c.LogLevel {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConnectDB membuka koneksi database dan menyimpannya di variabel global DB.
func ConnectDB(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Driver == "postgres" {
		dialector = postgres.Open(cfg.DSN())
	} else {
		dialector = mysql.Open(cfg.DSN())
	}

	newLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  cfg.gormLogLevel(),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "gagal koneksi ke database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "gagal mengambil pool koneksi")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Koneksi Database (%s) Berhasil!", cfg.Driver)

	DB = db
	return db, nil
}
