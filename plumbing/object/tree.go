package object

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/filemode"
	"github.com/go-treedelta/go-treedelta/plumbing/storer"
)

const maxTreeDepth = 1024

var (
	// ErrUnsupportedObject is returned when decoding an encoded object of
	// an unexpected type.
	ErrUnsupportedObject = errors.New("unsupported object type")
	// ErrMaxTreeDepth is returned when a tree nesting deeper than
	// maxTreeDepth is traversed.
	ErrMaxTreeDepth = errors.New("maximum tree depth exceeded")
	// ErrEntryNotFound is returned when an entry is not found in a tree.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrDirectoryNotFound is returned when an intermediate path component
	// does not resolve to a subtree.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrStorerRequired is returned on nested lookups over a tree that was
	// built without a storer to resolve subtrees against.
	ErrStorerRequired = errors.New("nested lookup requires a storer")
)

// Tree is basically like a directory - it references a bunch of other trees
// and/or blobs (i.e. files and sub-directories). Trees are immutable once
// written: deriving a changed tree always creates a new object, see
// TreeBuilder and RebuildTree.
type Tree struct {
	Entries []TreeEntry
	Hash    plumbing.Hash

	s storer.EncodedObjectStorer
	m map[string]*TreeEntry
}

// TreeEntry represents a file or a subtree in a tree. Name holds a single
// path component as raw bytes; it is never decoded or validated as text,
// and never contains a path separator.
type TreeEntry struct {
	Name string
	Mode filemode.FileMode
	Hash plumbing.Hash
}

// IsTree reports whether the entry references a subtree. Any other mode,
// including Submodule, is content that never gets recursed into.
func (e TreeEntry) IsTree() bool {
	return e.Mode.IsDir()
}

// DecodeTree decodes an encoded object into a *Tree, resolving nested
// entries against the given storer.
func DecodeTree(s storer.EncodedObjectStorer, o plumbing.EncodedObject) (*Tree, error) {
	t := &Tree{s: s}
	if err := t.Decode(o); err != nil {
		return nil, err
	}

	return t, nil
}

// ID returns the object ID of the tree. The returned value will always match
// the current value of Tree.Hash.
func (t *Tree) ID() plumbing.Hash {
	return t.Hash
}

// Type returns the type of object. It always returns plumbing.TreeObject.
func (t *Tree) Type() plumbing.ObjectType {
	return plumbing.TreeObject
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree) IsEmpty() bool {
	return len(t.Entries) == 0
}

// FindEntry searches for the entry at the given slash-joined path. Nested
// lookups require the tree to have been decoded from a storer; without
// one, ErrStorerRequired is returned.
func (t *Tree) FindEntry(path string) (*TreeEntry, error) {
	pathParts := strings.Split(path, "/")
	if len(pathParts) > maxTreeDepth {
		return nil, ErrMaxTreeDepth
	}

	tree := t
	var err error
	for len(pathParts) > 1 {
		if tree, err = tree.dir(pathParts[0]); err != nil {
			return nil, err
		}

		pathParts = pathParts[1:]
	}

	return tree.entry(pathParts[0])
}

func (t *Tree) dir(baseName string) (*Tree, error) {
	entry, err := t.entry(baseName)
	if err != nil {
		return nil, ErrDirectoryNotFound
	}

	if !entry.IsTree() {
		return nil, ErrDirectoryNotFound
	}

	if t.s == nil {
		return nil, ErrStorerRequired
	}

	obj, err := t.s.EncodedObject(plumbing.TreeObject, entry.Hash)
	if err != nil {
		return nil, err
	}

	return DecodeTree(t.s, obj)
}

func (t *Tree) entry(baseName string) (*TreeEntry, error) {
	if t.m == nil {
		t.buildMap()
	}

	entry, ok := t.m[baseName]
	if !ok {
		return nil, ErrEntryNotFound
	}

	return entry, nil
}

// buildMap keys the entries by raw name bytes; Go map keys hash the raw
// string representation, so names that are not valid UTF-8 work unchanged.
func (t *Tree) buildMap() {
	t.m = make(map[string]*TreeEntry, len(t.Entries))
	for i := range t.Entries {
		t.m[t.Entries[i].Name] = &t.Entries[i]
	}
}

// Decode transforms an EncodedObject into a Tree struct.
func (t *Tree) Decode(o plumbing.EncodedObject) (err error) {
	if o.Type() != plumbing.TreeObject {
		return ErrUnsupportedObject
	}

	t.Hash = o.Hash()
	t.Entries = nil
	t.m = nil

	if o.Size() == 0 {
		return nil
	}

	reader, err := o.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	r := bufio.NewReader(reader)
	for {
		str, err := r.ReadString(' ')
		if err != nil {
			if err == io.EOF {
				break
			}

			return err
		}
		str = str[:len(str)-1] // strip last byte (' ')

		mode, err := filemode.New(str)
		if err != nil {
			return err
		}

		name, err := r.ReadString(0)
		if err != nil && err != io.EOF {
			return err
		}

		var hash plumbing.Hash
		if _, err = io.ReadFull(r, hash[:]); err != nil {
			return err
		}

		baseName := name[:len(name)-1]
		t.Entries = append(t.Entries, TreeEntry{
			Hash: hash,
			Mode: mode,
			Name: baseName,
		})
	}

	return nil
}

// Encode transforms a Tree into an EncodedObject. Entries are written in
// the order they appear; writers are expected to keep them sorted, see
// TreeEntrySorter.
func (t *Tree) Encode(o plumbing.EncodedObject) (err error) {
	o.SetType(plumbing.TreeObject)

	w, err := o.Writer()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, entry := range t.Entries {
		mode := strconv.FormatInt(int64(entry.Mode), 8)
		if _, err = fmt.Fprintf(w, "%s %s", mode, entry.Name); err != nil {
			return err
		}

		if _, err = w.Write([]byte{0x00}); err != nil {
			return err
		}

		if _, err = w.Write(entry.Hash[:]); err != nil {
			return err
		}
	}

	return nil
}

// TreeEntrySorter sorts tree entries by raw name bytes, in increasing
// order. The order carries no meaning of its own; it only has to be
// deterministic so that equal trees encode to equal ids.
type TreeEntrySorter []TreeEntry

func (s TreeEntrySorter) Len() int {
	return len(s)
}

func (s TreeEntrySorter) Less(i, j int) bool {
	return s[i].Name < s[j].Name
}

func (s TreeEntrySorter) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
