// Package caching keeps short-lived in-memory copies of values that are
// read on every request but rarely written, such as stored settings.
package caching

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 10 * time.Minute
)

type Cache struct {
	memoryCache *cache.Cache
}

func NewCache() *Cache {
	return &Cache{
		memoryCache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (s *Cache) GetString(key string) (string, bool) {
	v, ok := s.memoryCache.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func (s *Cache) SetString(key string, value string) {
	s.memoryCache.SetDefault(key, value)
}

func (s *Cache) Delete(key string) {
	s.memoryCache.Delete(key)
}

func (s *Cache) Flush() {
	s.memoryCache.Flush()
}

func (s *Cache) Memory() *cache.Cache {
	return s.memoryCache
}
