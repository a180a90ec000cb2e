package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/testutil"
)

func TestSeedAll(t *testing.T) {
	db := testutil.PrepareDB(t)
	cfg := SeedConfig{AdminNama: "Super Admin", AdminEmail: "admin@yayasan.test", AdminPassword: "admin123"}

	require.NoError(t, SeedAll(db, cfg))
	// kedua kalinya tidak boleh menggandakan data
	cfg.AdminPassword = "gantiPassword"
	require.NoError(t, SeedAll(db, cfg))

	var count int64
	db.Model(&model.Permission{}).Count(&count)
	assert.Equal(t, int64(len(model.AllPermissions())), count)

	db.Model(&model.Role{}).Count(&count)
	assert.Equal(t, int64(len(rolePermissions)), count)

	db.Model(&model.JamKerja{}).Count(&count)
	assert.Equal(t, int64(14), count)

	var minggu model.JamKerja
	require.NoError(t, db.Joins("JOIN roles ON roles.id = jam_kerjas.role_id").
		Where("roles.nama_role = ? AND jam_kerjas.hari = ?", model.RoleGuru, 0).First(&minggu).Error)
	assert.True(t, minggu.IsLibur)

	var hrd model.Role
	require.NoError(t, db.Preload("Permissions").Where("nama_role = ?", model.RoleHRD).First(&hrd).Error)
	assert.Len(t, hrd.Permissions, len(rolePermissions[model.RoleHRD]))

	var admin model.User
	require.NoError(t, db.Preload("Roles").Where("email = ?", cfg.AdminEmail).First(&admin).Error)
	assert.True(t, admin.IsActive)
	assert.Equal(t, []string{model.RoleSuperAdmin}, admin.RoleNames())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("gantiPassword")))

	db.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedAllWithoutAdmin(t *testing.T) {
	db := testutil.PrepareDB(t)

	require.NoError(t, SeedAll(db, SeedConfig{}))

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Zero(t, count)
}
