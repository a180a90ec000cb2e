// Package token menerbitkan dan memverifikasi JWT access/refresh untuk API.
package token

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/model"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type JWTClaims struct {
	UserID    uint     `json:"user_id"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

func (c JWTClaims) HasRole(names ...string) bool {
	for _, r := range c.Roles {
		for _, n := range names {
			if r == n {
				return true
			}
		}
	}
	return false
}

type Manager struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewManager(cfg config.JWTConfig) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

func (m *Manager) GenerateAccessToken(user model.User) (string, *JWTClaims, error) {
	return m.generate(user, TypeAccess, m.cfg.AccessTokenTTL)
}

func (m *Manager) GenerateRefreshToken(user model.User) (string, *JWTClaims, error) {
	return m.generate(user, TypeRefresh, m.cfg.RefreshTokenTTL)
}

func (m *Manager) VerifyAccessToken(tokenString string) (*JWTClaims, error) {
	return m.verify(tokenString, TypeAccess)
}

func (m *Manager) VerifyRefreshToken(tokenString string) (*JWTClaims, error) {
	return m.verify(tokenString, TypeRefresh)
}

func (m *Manager) generate(user model.User, tokenType string, ttl time.Duration) (string, *JWTClaims, error) {
	now := m.now()
	claims := &JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Roles:     user.RoleNames(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.SecretKey)
	if err != nil {
		return "", nil, errors.Wrap(err, "sign token")
	}
	return signed, claims, nil
}

func (m *Manager) verify(tokenString, expectedType string) (*JWTClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}

	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.cfg.SecretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if !strings.EqualFold(claims.TokenType, expectedType) {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}
