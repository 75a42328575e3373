// Package object implements the decoded object model on top of a
// storer.EncodedObjectStorer, plus the tree delta engines: ChangedPaths
// enumerates the paths that differ between two tree snapshots, RebuildTree
// derives a new tree from a base tree and a sparse set of path edits, and
// FilterTree keeps only a requested subset of paths.
package object

import (
	"fmt"

	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/storer"
)

// Object is a generic representation of any decoded object.
type Object interface {
	ID() plumbing.Hash
	Type() plumbing.ObjectType
	Decode(plumbing.EncodedObject) error
	Encode(plumbing.EncodedObject) error
}

// GetTree gets a tree from an object storer and decodes it.
func GetTree(s storer.EncodedObjectStorer, h plumbing.Hash) (*Tree, error) {
	o, err := s.EncodedObject(plumbing.TreeObject, h)
	if err != nil {
		return nil, err
	}

	return DecodeTree(s, o)
}

// GetBlob gets a blob from an object storer and decodes it.
func GetBlob(s storer.EncodedObjectStorer, h plumbing.Hash) (*Blob, error) {
	o, err := s.EncodedObject(plumbing.BlobObject, h)
	if err != nil {
		return nil, err
	}

	return DecodeBlob(o)
}

// findTree resolves a subtree by id, tagging any failure with the offending
// id. A lookup failure is always fatal to the in-flight engine call.
func findTree(s storer.EncodedObjectStorer, h plumbing.Hash) (*Tree, error) {
	t, err := GetTree(s, h)
	if err != nil {
		return nil, fmt.Errorf("tree %s: %w", h, err)
	}

	return t, nil
}
