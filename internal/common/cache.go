package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// DeletePrefix removes every entry whose key starts with prefix.
func (c *Cache) DeletePrefix(prefix string) {
	for key := range c.Cache.Items() {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			c.Cache.Delete(key)
		}
	}
}

const CachePrefixLatestBlogs = "latest_blogs:"

func CacheKeyLatestBlogs(limit int) string {
	return CachePrefixLatestBlogs + strconv.Itoa(limit)
}
