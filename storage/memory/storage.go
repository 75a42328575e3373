// Package memory is a storage backend based on memory, mainly intended for
// tests and for trees that never need to outlive the process.
package memory

import (
	"github.com/go-treedelta/go-treedelta/plumbing"
)

// Storage is an in memory implementation of storer.EncodedObjectStorer.
type Storage struct {
	Objects map[plumbing.Hash]plumbing.EncodedObject
	Trees   map[plumbing.Hash]plumbing.EncodedObject
	Blobs   map[plumbing.Hash]plumbing.EncodedObject
}

// NewStorage returns a new empty Storage.
func NewStorage() *Storage {
	return &Storage{
		Objects: make(map[plumbing.Hash]plumbing.EncodedObject),
		Trees:   make(map[plumbing.Hash]plumbing.EncodedObject),
		Blobs:   make(map[plumbing.Hash]plumbing.EncodedObject),
	}
}

// NewEncodedObject returns a new plumbing.MemoryObject.
func (s *Storage) NewEncodedObject() plumbing.EncodedObject {
	return &plumbing.MemoryObject{}
}

// SetEncodedObject stores an object. The object should be fully written
// before being set. Setting identical content twice is idempotent and
// returns the same hash.
func (s *Storage) SetEncodedObject(o plumbing.EncodedObject) (plumbing.Hash, error) {
	h := o.Hash()

	switch o.Type() {
	case plumbing.TreeObject:
		s.Trees[h] = o
	case plumbing.BlobObject:
		s.Blobs[h] = o
	default:
		return h, plumbing.ErrInvalidType
	}

	s.Objects[h] = o
	return h, nil
}

// EncodedObject returns the object with the given hash, checking its type
// unless plumbing.AnyObject is given.
func (s *Storage) EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error) {
	o, ok := s.Objects[h]
	if !ok {
		return nil, plumbing.ErrObjectNotFound
	}

	if t != plumbing.AnyObject && o.Type() != t {
		return nil, plumbing.ErrObjectNotFound
	}

	return o, nil
}

// HasEncodedObject returns nil if the object exists.
func (s *Storage) HasEncodedObject(h plumbing.Hash) error {
	if _, ok := s.Objects[h]; !ok {
		return plumbing.ErrObjectNotFound
	}

	return nil
}
