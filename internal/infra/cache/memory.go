package cache

import (
	"sync"
	"time"

	"homework-bot/internal/domain"
)

// MemoryCache хранит ключи в памяти процесса.
type MemoryCache struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemory создаёт пустой кэш.
func NewMemory() *MemoryCache {
	return &MemoryCache{expires: make(map[string]time.Time), now: time.Now}
}

// Once выполняет функцию, если ключ ещё не задан. При ttl <= 0 функция выполняется всегда.
func (c *MemoryCache) Once(key string, ttl time.Duration, fn func() error) error {
	if ttl <= 0 {
		return fn()
	}
	c.mu.Lock()
	now := c.now()
	if expiresAt, ok := c.expires[key]; ok && now.Before(expiresAt) {
		c.mu.Unlock()
		return nil
	}
	c.expires[key] = now.Add(ttl)
	c.mu.Unlock()

	if err := fn(); err != nil {
		c.mu.Lock()
		delete(c.expires, key)
		c.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Cache = (*MemoryCache)(nil)
