package config

import (
	"time"

	"github.com/pkg/errors"
)

type JWTConfig struct {
	SecretKey       []byte
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func loadJWTConfig() (JWTConfig, error) {
	secret := GetEnv("JWT_SECRET", "")
	if secret == "" {
		return JWTConfig{}, errors.New("JWT_SECRET environment variable is not set")
	}

	return JWTConfig{
		SecretKey:       []byte(secret),
		Issuer:          GetEnv("JWT_ISSUER", "sdm-yayasan"),
		AccessTokenTTL:  GetEnvAsDuration("JWT_ACCESS_TTL", 24*time.Hour),
		RefreshTokenTTL: GetEnvAsDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
	}, nil
}
