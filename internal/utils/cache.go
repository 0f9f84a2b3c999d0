package utils

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a size-bounded local cache whose entries also expire.
type Cache struct {
	lruCache *lru.Cache[string, CacheItem]
}

var (
	cacheInstance *Cache
	cacheOnce     sync.Once
)

// NewCache creates a cache holding at most size entries.
func NewCache(size int) (*Cache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lruCache: l}, nil
}

// GetCache returns the process-wide cache.
func GetCache() *Cache {
	cacheOnce.Do(func() {
		c, err := NewCache(128)
		if err != nil {
			panic(err)
		}
		cacheInstance = c
	})
	return cacheInstance
}

// Set stores data under key for ttl.
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns nil when key is absent or expired.
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

func (c *Cache) Delete(key string) {
	c.lruCache.Remove(key)
}
