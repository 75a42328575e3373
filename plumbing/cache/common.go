// Package cache provides object caches for storers whose reads are
// expensive. The engines themselves issue one lookup per distinct subtree
// id; deduplicating repeated fetches of the same id is left to the storer,
// typically by placing one of these caches in front of its read path.
package cache

import "github.com/go-treedelta/go-treedelta/plumbing"

const (
	Byte FileSize = 1 << (iota * 10)
	KiByte
	MiByte
	GiByte
)

type FileSize int64

const DefaultMaxSize FileSize = 96 * MiByte

// Object is an interface to an object cache.
type Object interface {
	// Put puts the given object into the cache. Whether this object will
	// actually be put into the cache or not is implementation specific.
	Put(o plumbing.EncodedObject)
	// Get gets an object from the cache. The second return value is true if
	// the object was returned, and false otherwise.
	Get(k plumbing.Hash) (plumbing.EncodedObject, bool)
	// Clear clears every object from the cache.
	Clear()
}
