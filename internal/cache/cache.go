package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a TTL key/value cache. Values round-trip through JSON so
// callers never share memory with the cache.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, val any) error
	Delete(ctx context.Context, keys ...string) error
}

type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}

	raw, ok := v.([]byte)
	if !ok {
		m.c.Delete(key)
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}

	m.c.Set(key, raw, gocache.DefaultExpiration)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.c.Delete(k)
	}
	return nil
}

func (m *Memory) Flush() {
	m.c.Flush()
}
