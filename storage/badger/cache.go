package badger

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/module/metrics"
)

func withLimit[K comparable, V any](limit uint) func(*Cache[K, V]) {
	return func(c *Cache[K, V]) {
		c.limit = limit
	}
}

type retrieveFunc[K comparable, V any] func(K) (V, error)

func withRetrieve[K comparable, V any](retrieve retrieveFunc[K, V]) func(*Cache[K, V]) {
	return func(c *Cache[K, V]) {
		c.retrieve = retrieve
	}
}

func noRetrieve[K comparable, V any](K) (V, error) {
	var zero V
	return zero, fmt.Errorf("no retrieve function for cache get available")
}

func withResource[K comparable, V any](resource string) func(*Cache[K, V]) {
	return func(c *Cache[K, V]) {
		c.resource = resource
	}
}

// Cache is a read-through LRU cache in front of the database. Writes go to
// the database first; Insert is called only once they are committed.
type Cache[K comparable, V any] struct {
	metrics  module.CacheMetrics
	limit    uint
	retrieve retrieveFunc[K, V]
	resource string
	cache    *lru.Cache[K, V]
}

func newCache[K comparable, V any](collector module.CacheMetrics, options ...func(*Cache[K, V])) *Cache[K, V] {
	c := Cache[K, V]{
		metrics:  collector,
		limit:    1000,
		retrieve: noRetrieve[K, V],
		resource: metrics.ResourceUndefined,
	}
	for _, option := range options {
		option(&c)
	}
	var err error
	c.cache, err = lru.New[K, V](int(c.limit))
	if err != nil {
		panic(fmt.Sprintf("could not create lru cache of size %d: %v", c.limit, err))
	}
	c.metrics.CacheEntries(c.resource, uint(c.cache.Len()))
	return &c
}

// Get will try to retrieve the resource from cache first, and then from the
// injected retrieve function.
func (c *Cache[K, V]) Get(key K) (V, error) {

	// check if we have it in the cache
	resource, cached := c.cache.Get(key)
	if cached {
		c.metrics.CacheHit(c.resource)
		return resource, nil
	}

	// get it from the database
	c.metrics.CacheMiss(c.resource)
	resource, err := c.retrieve(key)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("could not retrieve resource: %w", err)
	}

	// a concurrent committed write may have populated the entry meanwhile;
	// it wins over what we just read
	previous, found, _ := c.cache.PeekOrAdd(key, resource)
	if found {
		resource = previous
	}
	c.metrics.CacheEntries(c.resource, uint(c.cache.Len()))

	return resource, nil
}

// Insert adds or replaces the cached value for key.
func (c *Cache[K, V]) Insert(key K, resource V) {
	c.cache.Add(key, resource)
	c.metrics.CacheEntries(c.resource, uint(c.cache.Len()))
}

// Remove drops the cached value for key.
func (c *Cache[K, V]) Remove(key K) {
	c.cache.Remove(key)
}
