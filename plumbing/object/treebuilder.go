package object

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/storer"
)

// TreeBuilder assembles a new tree out of an optional base tree and a set
// of staged entry changes, keeping the entries ordered by name at all
// times. Existing trees are never touched: Write always produces a new
// object, whose id equals the base's if nothing effectively changed.
type TreeBuilder struct {
	s       storer.EncodedObjectStorer
	entries *treemap.Map
}

// NewTreeBuilder returns a TreeBuilder seeded with the entries of base.
// A nil base seeds an empty builder.
func NewTreeBuilder(s storer.EncodedObjectStorer, base *Tree) *TreeBuilder {
	b := &TreeBuilder{
		s:       s,
		entries: treemap.NewWithStringComparator(),
	}

	if base != nil {
		for _, e := range base.Entries {
			b.entries.Put(e.Name, e)
		}
	}

	return b
}

// Insert stages an entry, replacing any previous entry with the same name.
func (b *TreeBuilder) Insert(e TreeEntry) {
	b.entries.Put(e.Name, e)
}

// Remove unstages the entry with the given name. Removing an absent name
// is a no-op: the name may refer to a path that never existed in the base.
func (b *TreeBuilder) Remove(name string) {
	b.entries.Remove(name)
}

// Get returns the currently staged entry for name.
func (b *TreeBuilder) Get(name string) (TreeEntry, bool) {
	v, ok := b.entries.Get(name)
	if !ok {
		return TreeEntry{}, false
	}

	return v.(TreeEntry), true
}

// Len returns the number of staged entries.
func (b *TreeBuilder) Len() int {
	return b.entries.Size()
}

// Write encodes the staged entries as a new tree, writes it to the storer
// and returns its id.
func (b *TreeBuilder) Write() (plumbing.Hash, error) {
	t := &Tree{Entries: make([]TreeEntry, 0, b.entries.Size())}

	it := b.entries.Iterator()
	for it.Next() {
		t.Entries = append(t.Entries, it.Value().(TreeEntry))
	}

	o := b.s.NewEncodedObject()
	if err := t.Encode(o); err != nil {
		return plumbing.ZeroHash, err
	}

	return b.s.SetEncodedObject(o)
}
