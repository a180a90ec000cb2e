package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/model"
)

func newManager() *Manager {
	return NewManager(config.JWTConfig{
		SecretKey:       []byte("test-secret"),
		Issuer:          "sdm-yayasan",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func testUser() model.User {
	u := model.User{Email: "ani@yayasan.id", Roles: []model.Role{{NamaRole: model.RoleHRD}}}
	u.ID = 7
	return u
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager()
	signed, _, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, []string{model.RoleHRD}, claims.Roles)
	assert.True(t, claims.HasRole(model.RoleHRD))
	assert.False(t, claims.HasRole(model.RoleDirektur))
}

func TestTokenTypeIsEnforced(t *testing.T) {
	m := newManager()
	refresh, _, err := m.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(refresh)
	assert.Error(t, err, "refresh token must not pass as access token")

	_, err = m.VerifyRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestExpiredToken(t *testing.T) {
	m := newManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, _, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.VerifyAccessToken(signed)
	assert.Error(t, err)
}

func TestWrongSecretOrIssuer(t *testing.T) {
	m := newManager()
	signed, _, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := NewManager(config.JWTConfig{SecretKey: []byte("lain"), Issuer: "sdm-yayasan", AccessTokenTTL: time.Hour})
	_, err = other.VerifyAccessToken(signed)
	assert.Error(t, err)

	other = NewManager(config.JWTConfig{SecretKey: []byte("test-secret"), Issuer: "lain", AccessTokenTTL: time.Hour})
	_, err = other.VerifyAccessToken(signed)
	assert.Error(t, err)

	_, err = m.VerifyAccessToken("")
	assert.Error(t, err)
}
