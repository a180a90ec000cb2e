// Package cache menyimpan role dan permission per user di Redis agar middleware tidak query setiap request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"sdm-yayasan-backend/config"
)

// Akses adalah role dan permission efektif milik satu user aktif.
type Akses struct {
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

func (a Akses) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}

func (a Akses) Can(permission string) bool {
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

type PermissionCache interface {
	Get(ctx context.Context, userID uint) (Akses, bool)
	Set(ctx context.Context, userID uint, akses Akses)
	// Flush dipanggil setiap kali role, permission, role milik user, atau status user berubah.
	Flush(ctx context.Context)
}

const keyPrefix = "sdm:permissions:user:"

type redisPermissionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New mengembalikan cache Redis bila REDIS_ADDR diisi, atau cache kosong bila tidak.
func New(ctx context.Context, cfg config.RedisConfig) (PermissionCache, error) {
	if !cfg.Enabled() {
		return Noop{}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	log.Println("Redis permission cache aktif:", cfg.Addr)
	return NewRedis(rdb, cfg.TTL), nil
}

func NewRedis(rdb *redis.Client, ttl time.Duration) PermissionCache {
	return &redisPermissionCache{rdb: rdb, ttl: ttl}
}

func key(userID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

func (c *redisPermissionCache) Get(ctx context.Context, userID uint) (Akses, bool) {
	raw, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("redis get permission user %d: %v", userID, err)
		}
		return Akses{}, false
	}
	var akses Akses
	if err := json.Unmarshal(raw, &akses); err != nil {
		return Akses{}, false
	}
	return akses, true
}

func (c *redisPermissionCache) Set(ctx context.Context, userID uint, akses Akses) {
	raw, err := json.Marshal(akses)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(userID), raw, c.ttl).Err(); err != nil {
		log.Printf("redis set permission user %d: %v", userID, err)
	}
}

func (c *redisPermissionCache) Flush(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("redis del %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("redis scan permission: %v", err)
	}
}

// Noop dipakai saat Redis tidak dikonfigurasi.
type Noop struct{}

func (Noop) Get(context.Context, uint) (Akses, bool) { return Akses{}, false }
func (Noop) Set(context.Context, uint, Akses)        {}
func (Noop) Flush(context.Context)                   {}

// Memory adalah cache dalam proses, dipakai di test.
type Memory struct {
	mu   sync.Mutex
	data map[uint]Akses
}

func NewMemory() *Memory { return &Memory{data: map[uint]Akses{}} }

func (m *Memory) Get(_ context.Context, userID uint) (Akses, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.data[userID]
	return a, ok
}

func (m *Memory) Set(_ context.Context, userID uint, akses Akses) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID] = akses
}

func (m *Memory) Flush(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[uint]Akses{}
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
