package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var envOnce sync.Once

// LoadEnv membaca file .env sekali saja. Jika file tidak ada, environment sistem yang dipakai.
func LoadEnv() {
	envOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
		}
	})
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("invalid %s value %q, using default %s", key, valueStr, fallback)
		return fallback
	}
	return value
}

type AppConfig struct {
	Port        string
	Timezone    string
	NamaYayasan string
	Database    DatabaseConfig
	JWT         JWTConfig
	Session     SessionConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Email       EmailConfig
	Firebase    FirebaseConfig
	Absensi     AbsensiConfig
	Cuti        CutiConfig
}

type SessionConfig struct {
	CookieSecure bool
	Expiration   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type StorageConfig struct {
	Driver    string // local | s3
	LocalDir  string
	PublicURL string
	Region    string
	Bucket    string
	Endpoint  string
}

type EmailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
}

func (c EmailConfig) Enabled() bool { return c.Host != "" }

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

func (c FirebaseConfig) Enabled() bool { return c.ProjectID != "" }

// AbsensiConfig berisi aturan default absensi bila JamKerja belum diatur.
type AbsensiConfig struct {
	JamMasuk       string
	JamPulang      string
	ToleransiMenit int
	RadiusMeter    float64
}

type CutiConfig struct {
	KuotaTahunan int
}

// Load membaca seluruh konfigurasi aplikasi dari environment.
func Load() (AppConfig, error) {
	LoadEnv()

	jwtCfg, err := loadJWTConfig()
	if err != nil {
		return AppConfig{}, err
	}

	cfg := AppConfig{
		Port:        GetEnv("APP_PORT", "3000"),
		Timezone:    GetEnv("APP_TIMEZONE", "Asia/Jakarta"),
		NamaYayasan: GetEnv("APP_NAMA_YAYASAN", "Yayasan Pendidikan"),
		Database:    LoadDatabaseConfig(),
		JWT:         jwtCfg,
		Session: SessionConfig{
			CookieSecure: GetEnvAsBool("SESSION_COOKIE_SECURE", false),
			Expiration:   GetEnvAsDuration("SESSION_EXPIRATION", 8*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
			TTL:      GetEnvAsDuration("REDIS_PERMISSION_TTL", 10*time.Minute),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(GetEnv("STORAGE_DRIVER", "local")),
			LocalDir:  GetEnv("STORAGE_LOCAL_DIR", "./storage/public"),
			PublicURL: GetEnv("STORAGE_PUBLIC_URL", "/storage"),
			Region:    GetEnv("AWS_REGION", ""),
			Bucket:    GetEnv("AWS_S3_BUCKET", ""),
			Endpoint:  GetEnv("S3_ENDPOINT_URL", ""),
		},
		Email: EmailConfig{
			Host:        GetEnv("SMTP_HOST", ""),
			Port:        GetEnvAsInt("SMTP_PORT", 587),
			Username:    GetEnv("SMTP_USERNAME", ""),
			Password:    GetEnv("SMTP_PASSWORD", ""),
			FromAddress: GetEnv("SMTP_FROM", ""),
		},
		Firebase: FirebaseConfig{
			ProjectID:       GetEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsFile: GetEnv("FIREBASE_CREDENTIALS_FILE", ""),
		},
		Absensi: AbsensiConfig{
			JamMasuk:       GetEnv("ABSENSI_JAM_MASUK", "07:00"),
			JamPulang:      GetEnv("ABSENSI_JAM_PULANG", "15:00"),
			ToleransiMenit: GetEnvAsInt("ABSENSI_TOLERANSI_MENIT", 15),
			RadiusMeter:    float64(GetEnvAsInt("ABSENSI_RADIUS_METER", 500)),
		},
		Cuti: CutiConfig{
			KuotaTahunan: GetEnvAsInt("CUTI_KUOTA_TAHUNAN", 12),
		},
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate memeriksa kombinasi konfigurasi yang tidak masuk akal sebelum server dijalankan.
func (c AppConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return errors.Wrapf(err, "APP_TIMEZONE %q tidak dikenal", c.Timezone)
	}
	switch c.Storage.Driver {
	case "local":
		if c.Storage.LocalDir == "" {
			return errors.New("STORAGE_LOCAL_DIR wajib diisi untuk storage local")
		}
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			return errors.New("AWS_S3_BUCKET dan AWS_REGION wajib diisi untuk storage s3")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER %q tidak didukung", c.Storage.Driver)
	}
	if _, err := time.Parse("15:04", c.Absensi.JamMasuk); err != nil {
		return errors.Wrap(err, "ABSENSI_JAM_MASUK harus berformat HH:MM")
	}
	if _, err := time.Parse("15:04", c.Absensi.JamPulang); err != nil {
		return errors.Wrap(err, "ABSENSI_JAM_PULANG harus berformat HH:MM")
	}
	if c.Absensi.ToleransiMenit < 0 {
		return errors.New("ABSENSI_TOLERANSI_MENIT tidak boleh negatif")
	}
	if c.Absensi.RadiusMeter <= 0 {
		return errors.New("ABSENSI_RADIUS_METER harus lebih dari 0")
	}
	if c.Cuti.KuotaTahunan < 0 {
		return errors.New("CUTI_KUOTA_TAHUNAN tidak boleh negatif")
	}
	return nil
}

// Location mengembalikan zona waktu aplikasi, jatuh ke time.Local bila tidak valid.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
