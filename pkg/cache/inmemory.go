package cache

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a TTL key-value store for upstream API responses. Callers pass
// the TTL explicitly per entry so expiry policy lives in configuration, not
// in the cache itself.
type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
}

type goCache struct {
	internal *cache.Cache
}

// NewCache returns a new Cache instance with default expiration and cleanup interval
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	return &goCache{
		internal: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *goCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *goCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *goCache) Delete(key string) {
	c.internal.Delete(key)
}

func (c *goCache) Flush() {
	c.internal.Flush()
}

// Key builds a cache key from a query kind, a ticker and any extra
// parameters that make the query unique, e.g. Key("bars", "AAPL", "daily", "90").
func Key(kind, ticker string, params ...string) string {
	parts := append([]string{kind, ticker}, params...)
	return strings.Join(parts, ":")
}

// GetTyped returns the cached value for key if present and of type T.
func GetTyped[T any](c Cache, key string) (T, bool) {
	var zero T
	val, found := c.Get(key)
	if !found {
		return zero, false
	}
	typedVal, ok := val.(T)
	if !ok {
		return zero, false
	}
	return typedVal, true
}
