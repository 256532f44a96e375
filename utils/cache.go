package utils

import (
	"github.com/floatdrop/lru"
)

type Cache[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Set(key K, value V)
	Delete(key K)
	Len() int
}

type LRUCache[K comparable, V any] struct {
	values *lru.LRU[K, V]
}

func NewLRUCache[K comparable, V any](size int) *LRUCache[K, V] {
	return &LRUCache[K, V]{
		values: lru.New[K, V](size),
	}
}

func (c *LRUCache[K, V]) Get(key K) (value V, ok bool) {
	if v := c.values.Get(key); v != nil {
		return *v, true
	}
	return value, false
}

func (c *LRUCache[K, V]) Set(key K, value V) {
	c.values.Set(key, value)
}

func (c *LRUCache[K, V]) Delete(key K) {
	c.values.Remove(key)
}

func (c *LRUCache[K, V]) Len() int {
	return c.values.Len()
}
