// Package testutil berisi helper untuk test yang butuh database.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sdm-yayasan-backend/internal/model"
)

// PrepareDB membuka SQLite in-memory baru yang sudah dimigrasi untuk satu test.
func PrepareDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	// satu koneksi agar penulisan dari beberapa goroutine berjalan berurutan
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("PrepareDB() migrate failed: %v", err)
	}
	return db
}

// CreateRole membuat role dengan permission yang diberikan.
func CreateRole(t *testing.T, db *gorm.DB, name string, permissions ...string) model.Role {
	t.Helper()
	role := model.Role{NamaRole: name}
	for _, p := range permissions {
		perm := model.Permission{NamaPermission: p}
		if err := db.Where(model.Permission{NamaPermission: p}).FirstOrCreate(&perm).Error; err != nil {
			t.Fatalf("CreateRole() failed: %v", err)
		}
		role.Permissions = append(role.Permissions, perm)
	}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("CreateRole() failed: %v", err)
	}
	return role
}

type UserOption func(u *model.User)

func WithRoles(roles ...model.Role) UserOption {
	return func(u *model.User) { u.Roles = append(u.Roles, roles...) }
}

func WithTempatKerja(id uint) UserOption {
	return func(u *model.User) { u.ProfilePekerjaan.TempatKerjaID = &id }
}

func Inactive() UserOption {
	return func(u *model.User) { u.IsActive = false }
}

// CreateUser membuat user aktif lengkap dengan profil. Password selalu "rahasia123".
func CreateUser(t *testing.T, db *gorm.DB, nama, email, nik, nip string, opts ...UserOption) model.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	user := model.User{
		Nama:             nama,
		Email:            email,
		Password:         string(hash),
		IsActive:         true,
		ProfilePribadi:   &model.ProfilePribadi{NIK: nik},
		ProfilePekerjaan: &model.ProfilePekerjaan{NIP: nip, StatusKepegawaian: model.StatusPegawaiTetap},
	}
	for _, opt := range opts {
		opt(&user)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if !user.IsActive {
		db.Model(&user).Update("is_active", false)
	}
	return user
}

// CreateTempatKerja membuat lokasi kerja dengan radius bawaan 500 meter.
func CreateTempatKerja(t *testing.T, db *gorm.DB, nama string, lat, lon float64) model.TempatKerja {
	t.Helper()
	tk := model.TempatKerja{Nama: nama, Latitude: lat, Longitude: lon, RadiusMeter: 500}
	if err := db.Create(&tk).Error; err != nil {
		t.Fatalf("CreateTempatKerja() failed: %v", err)
	}
	return tk
}
