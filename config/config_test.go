package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-uji")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_NAME", "sdm_test")
	t.Setenv("STORAGE_DRIVER", "local")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "07:00", cfg.Absensi.JamMasuk)
	assert.Equal(t, 15, cfg.Absensi.ToleransiMenit)
	assert.Equal(t, float64(500), cfg.Absensi.RadiusMeter)
	assert.Equal(t, 12, cfg.Cuti.KuotaTahunan)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Email.Enabled())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	setRequiredEnv(t)
	base, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *AppConfig) {}},
		{name: "unknown db driver", mutate: func(c *AppConfig) { c.Database.Driver = "oracle" }, wantErr: true},
		{name: "postgres ok", mutate: func(c *AppConfig) { c.Database.Driver = "postgres" }},
		{name: "s3 without bucket", mutate: func(c *AppConfig) { c.Storage.Driver = "s3" }, wantErr: true},
		{name: "s3 with bucket", mutate: func(c *AppConfig) {
			c.Storage.Driver = "s3"
			c.Storage.Bucket = "sdm"
			c.Storage.Region = "ap-southeast-1"
		}},
		{name: "bad jam masuk", mutate: func(c *AppConfig) { c.Absensi.JamMasuk = "7 pagi" }, wantErr: true},
		{name: "negative grace", mutate: func(c *AppConfig) { c.Absensi.ToleransiMenit = -1 }, wantErr: true},
		{name: "zero radius", mutate: func(c *AppConfig) { c.Absensi.RadiusMeter = 0 }, wantErr: true},
		{name: "bad timezone", mutate: func(c *AppConfig) { c.Timezone = "Mars/Olympus" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "empat")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_DUR", "90s")

	assert.Equal(t, 42, GetEnvAsInt("X_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("X_BAD_INT", 1))
	assert.True(t, GetEnvAsBool("X_BOOL", false))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("X_DUR", time.Second))
	assert.Equal(t, "fallback", GetEnv("X_MISSING", "fallback"))
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "u:p@tcp(db:3306)/n?charset=utf8mb4&parseTime=True&loc=Local", c.DSN())

	c.Driver = "postgres"
	c.Port = "5432"
	c.SSLMode = "disable"
	assert.Contains(t, c.DSN(), "host=db user=u password=p dbname=n port=5432 sslmode=disable")
}
