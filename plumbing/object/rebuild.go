package object

import (
	"errors"
	"strings"

	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/filemode"
	"github.com/go-treedelta/go-treedelta/plumbing/storer"
)

// Edit is the desired content for a path: an object id and the mode to
// record it under.
type Edit struct {
	Hash plumbing.Hash
	Mode filemode.FileMode
}

// Edits maps slash-joined paths to their desired content. A nil value
// removes the path; removing a path that does not exist is a valid no-op.
// Path components are opaque byte strings, no encoding is assumed or
// validated. Empty components (from leading, trailing or doubled
// separators) are dropped.
type Edits map[string]*Edit

// RebuildTree writes a new tree that reflects base with the given edits
// applied, and returns its id. A nil base stands for the empty tree.
//
// Intermediate directories are created as needed. A directory left empty
// by removals vanishes from its parent, recursively. An entry that used to
// be a file and now receives nested edits loses the stale file entry.
//
// Any storer failure aborts immediately. Child trees already written
// before a later sibling fails are not rolled back; they remain as
// unreferenced objects in an append-only store.
func RebuildTree(s storer.EncodedObjectStorer, base *Tree, edits Edits) (plumbing.Hash, error) {
	return rebuildTree(s, base, edits, 0)
}

func rebuildTree(s storer.EncodedObjectStorer, base *Tree, edits Edits, depth int) (plumbing.Hash, error) {
	if depth > maxTreeDepth {
		return plumbing.ZeroHash, ErrMaxTreeDepth
	}

	direct := make(map[string]*Edit)
	grouped := make(map[string]Edits)

	for path, edit := range edits {
		parts := splitPath(path)
		switch len(parts) {
		case 0:
			// Nothing a fully empty path could apply to.
		case 1:
			direct[parts[0]] = edit
		default:
			name := parts[0]
			group, ok := grouped[name]
			if !ok {
				group = make(Edits)
				grouped[name] = group
			}

			group[joinPath(parts[1:])] = edit
		}
	}

	b := NewTreeBuilder(s, base)

	for name, edit := range direct {
		if edit == nil {
			b.Remove(name)
			continue
		}

		b.Insert(TreeEntry{Name: name, Mode: edit.Mode, Hash: edit.Hash})
	}

	for name, group := range grouped {
		// Only a subtree entry can seed the child rebuild; a file entry
		// under this name is stale and gets discarded.
		var childBase *Tree
		if entry, ok := b.Get(name); ok && entry.IsTree() {
			var err error
			if childBase, err = findTree(s, entry.Hash); err != nil {
				return plumbing.ZeroHash, err
			}
		}

		childHash, err := rebuildTree(s, childBase, group, depth+1)
		if err != nil {
			return plumbing.ZeroHash, err
		}

		child, err := findTree(s, childHash)
		if err != nil {
			return plumbing.ZeroHash, err
		}

		if child.IsEmpty() {
			b.Remove(name)
		} else {
			b.Insert(TreeEntry{Name: name, Mode: filemode.Dir, Hash: childHash})
		}
	}

	return b.Write()
}

// FilterTree writes a new tree that keeps only the given paths of tree,
// recreating intermediate directories as needed, and returns its id.
// Paths that do not appear in the tree at all are ignored.
func FilterTree(s storer.EncodedObjectStorer, tree *Tree, paths []string) (plumbing.Hash, error) {
	edits := make(Edits, len(paths))
	for _, path := range paths {
		entry, err := tree.FindEntry(path)
		if err != nil {
			if errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrDirectoryNotFound) {
				continue
			}

			return plumbing.ZeroHash, err
		}

		edits[path] = &Edit{Hash: entry.Hash, Mode: entry.Mode}
	}

	return RebuildTree(s, nil, edits)
}

// splitPath splits a slash-joined path into components, dropping empty
// ones.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}
