package cache

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/go-treedelta/go-treedelta/plumbing"
)

// ObjectLRU implements an object cache with an LRU eviction policy and a
// maximum size (measured in object size).
type ObjectLRU struct {
	MaxSize FileSize

	actualSize FileSize
	cache      *lru.Cache
	mut        sync.Mutex
}

// NewObjectLRU creates a new ObjectLRU with the given maximum size. The
// maximum size will never be exceeded.
func NewObjectLRU(maxSize FileSize) *ObjectLRU {
	c := &ObjectLRU{MaxSize: maxSize}
	c.cache = &lru.Cache{
		OnEvicted: func(_ lru.Key, value interface{}) {
			c.actualSize -= FileSize(value.(plumbing.EncodedObject).Size())
		},
	}

	return c
}

// NewObjectLRUDefault creates a new ObjectLRU with the default cache size.
func NewObjectLRUDefault() *ObjectLRU {
	return NewObjectLRU(DefaultMaxSize)
}

// Put puts an object into the cache. If the object is already in the cache,
// it will be marked as used. Otherwise, it will be inserted. Objects bigger
// than the cache size are not stored at all.
func (c *ObjectLRU) Put(obj plumbing.EncodedObject) {
	c.mut.Lock()
	defer c.mut.Unlock()

	objSize := FileSize(obj.Size())
	if objSize > c.MaxSize {
		return
	}

	key := obj.Hash()
	if old, ok := c.cache.Get(key); ok {
		// Replacing a key does not run OnEvicted.
		c.actualSize -= FileSize(old.(plumbing.EncodedObject).Size())
	}

	c.cache.Add(key, obj)
	c.actualSize += objSize

	for c.actualSize > c.MaxSize && c.cache.Len() > 1 {
		c.cache.RemoveOldest()
	}
}

// Get returns an object by its hash. It marks the object as used. If the
// object is not in the cache, (nil, false) will be returned.
func (c *ObjectLRU) Get(k plumbing.Hash) (plumbing.EncodedObject, bool) {
	c.mut.Lock()
	defer c.mut.Unlock()

	value, ok := c.cache.Get(k)
	if !ok {
		return nil, false
	}

	return value.(plumbing.EncodedObject), true
}

// Clear the content of this object cache.
func (c *ObjectLRU) Clear() {
	c.mut.Lock()
	defer c.mut.Unlock()

	c.cache.Clear()
	c.actualSize = 0
}
