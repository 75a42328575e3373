// Package storer defines the interfaces of the content addressed object
// store the tree delta engines run against.
package storer

import (
	"github.com/go-treedelta/go-treedelta/plumbing"
)

// EncodedObjectStorer is a generic storer for encoded objects. The store is
// append-only: objects are never mutated or removed once written, and
// writing identical content twice yields the same hash. Implementations
// must keep the read path reentrant, as concurrent diff and rebuild calls
// share a storer.
type EncodedObjectStorer interface {
	// NewEncodedObject returns a new plumbing.EncodedObject, the real type
	// of the object can be a custom implementation or the default one,
	// plumbing.MemoryObject.
	NewEncodedObject() plumbing.EncodedObject
	// SetEncodedObject saves an object into the storage, the object should
	// be created with the NewEncodedObject, method, and file if the type
	// is not supported.
	SetEncodedObject(plumbing.EncodedObject) (plumbing.Hash, error)
	// EncodedObject gets an object by hash with the given
	// plumbing.ObjectType. Implementors should return
	// (nil, plumbing.ErrObjectNotFound) if an object doesn't exist with
	// both the given hash and object type.
	//
	// Valid plumbing.ObjectType values are TreeObject, BlobObject and
	// AnyObject. If AnyObject is given, the object must be looked up
	// regardless of its type.
	EncodedObject(plumbing.ObjectType, plumbing.Hash) (plumbing.EncodedObject, error)
	// HasEncodedObject returns an error if the object doesn't exist.
	HasEncodedObject(plumbing.Hash) error
}
