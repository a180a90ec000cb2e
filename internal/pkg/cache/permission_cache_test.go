package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdm-yayasan-backend/config"
)

func TestNewWithoutRedisIsNoop(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	c.Set(context.Background(), 1, Akses{Permissions: []string{"kelola_pegawai"}})
	_, ok := c.Get(context.Background(), 1)
	assert.False(t, ok)
}

func TestMemoryFlush(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Set(ctx, 7, Akses{Roles: []string{"hrd"}, Permissions: []string{"kelola_absensi"}})

	akses, ok := m.Get(ctx, 7)
	require.True(t, ok)
	assert.True(t, akses.HasRole("hrd"))
	assert.True(t, akses.Can("kelola_absensi"))
	assert.False(t, akses.Can("kelola_role"))

	m.Flush(ctx)
	assert.Equal(t, 0, m.Len())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "sdm:permissions:user:42", key(42))
}
