package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// InMemoryCache implements Cache using patrickmn/go-cache
type InMemoryCache struct {
	cache *gocache.Cache
}

var (
	instance *InMemoryCache
	initOnce sync.Once
)

// Initialize returns the process-wide in-memory cache instance.
func Initialize() Cache {
	initOnce.Do(func() {
		instance = &InMemoryCache{
			cache: gocache.New(DefaultExpiryTime, 10*time.Minute),
		}
	})
	return instance
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration == 0 {
		expiration = gocache.NoExpiration
	}
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(ctx context.Context, prefix string) {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

func (c *InMemoryCache) Flush(ctx context.Context) {
	c.cache.Flush()
}
