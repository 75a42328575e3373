package object

import (
	"sort"
	"strings"

	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/filemode"
	"github.com/go-treedelta/go-treedelta/plumbing/storer"
)

// PathSet is a set of slash-joined paths. The set carries no ordering;
// Sorted gives a deterministic view for display and tests.
type PathSet map[string]struct{}

// Add adds a path to the set.
func (s PathSet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports whether path is in the set.
func (s PathSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted returns the paths in increasing order.
func (s PathSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}

// ChangedPaths compares two trees and returns the set of paths whose
// content or mode differ between them. Either side may be nil, standing
// for an empty tree, e.g. the root tree of a snapshot with no parent.
//
// The cost is proportional to the number of changed paths times their
// depth, not to the size of the trees: subtrees equal on both sides by id
// and mode are skipped without ever being read from the storer. A failed
// subtree lookup aborts the whole traversal; no partial result is
// returned.
//
// Directory paths themselves never appear in the result, with one
// exception: a directory whose own mode bits changed while its contents
// did not is reported, without recursing into it.
func ChangedPaths(s storer.EncodedObjectStorer, lhs, rhs *Tree) (PathSet, error) {
	changes := make(PathSet)
	if err := changedPaths(s, changes, nil, lhs, rhs); err != nil {
		return nil, err
	}

	return changes, nil
}

// entryClass tells absent entries, subtree entries and everything else
// apart. The three classes are mutually exclusive: exactly one outcome is
// selected per compared name.
type entryClass int8

const (
	classAbsent entryClass = iota
	classNonTree
	classTree
)

type classifiedEntry struct {
	class entryClass
	hash  plumbing.Hash
	mode  filemode.FileMode
}

// classifyEntry derives the class from the entry mode alone: anything that
// is not a subtree, including submodule pointers, counts as content.
func classifyEntry(e *TreeEntry) classifiedEntry {
	switch {
	case e == nil:
		return classifiedEntry{class: classAbsent}
	case e.IsTree():
		return classifiedEntry{class: classTree, hash: e.Hash, mode: e.Mode}
	default:
		return classifiedEntry{class: classNonTree, hash: e.Hash, mode: e.Mode}
	}
}

// changedPaths is a hot path: path components accumulate as slices and are
// only joined into a path string at the moment a change is reported.
func changedPaths(s storer.EncodedObjectStorer, acc PathSet, current []string, lhs, rhs *Tree) error {
	if len(current) > maxTreeDepth {
		return ErrMaxTreeDepth
	}

	lhsEntries := entriesByName(lhs)
	rhsEntries := entriesByName(rhs)

	names := make(map[string]struct{}, len(lhsEntries)+len(rhsEntries))
	for name := range lhsEntries {
		names[name] = struct{}{}
	}
	for name := range rhsEntries {
		names[name] = struct{}{}
	}

	for name := range names {
		le := classifyEntry(lhsEntries[name])
		re := classifyEntry(rhsEntries[name])

		path := appendPath(current, name)

		switch {
		case le.class == classAbsent && re.class == classAbsent:
			// Cannot happen, the union holds at least one side. Nothing
			// to report either way.

		case le.class == classNonTree && re.class == classNonTree:
			if le.hash != re.hash || le.mode != re.mode {
				acc.Add(joinPath(path))
			}

		case le.class == classAbsent && re.class == classNonTree,
			le.class == classNonTree && re.class == classAbsent:
			// Added or removed file.
			acc.Add(joinPath(path))

		case le.class == classAbsent && re.class == classTree,
			le.class == classTree && re.class == classAbsent:
			// A directory was added or removed: every path inside it
			// changed, but the directory itself is not a leaf.
			tree, err := findTree(s, treeSide(le, re).hash)
			if err != nil {
				return err
			}

			if err := changedPaths(s, acc, path, tree, nil); err != nil {
				return err
			}

		case le.class == classNonTree && re.class == classTree,
			le.class == classTree && re.class == classNonTree:
			// A file was changed into a directory or the other way
			// around: the file level path changed, and so did everything
			// nested under the directory side.
			tree, err := findTree(s, treeSide(le, re).hash)
			if err != nil {
				return err
			}

			if err := changedPaths(s, acc, path, tree, nil); err != nil {
				return err
			}

			acc.Add(joinPath(path))

		case le.class == classTree && re.class == classTree:
			switch {
			case le.hash == re.hash && le.mode == re.mode:
				// Identical subtree, never read.

			case le.hash == re.hash:
				// Contents identical, only the directory's own mode
				// changed. A subtree entry should only ever carry one
				// mode, but stray bits do turn up; report the change
				// rather than hide it.
				acc.Add(joinPath(path))

			default:
				lhsTree, err := findTree(s, le.hash)
				if err != nil {
					return err
				}

				rhsTree, err := findTree(s, re.hash)
				if err != nil {
					return err
				}

				if err := changedPaths(s, acc, path, lhsTree, rhsTree); err != nil {
					return err
				}

				if le.mode != re.mode {
					acc.Add(joinPath(path))
				}
			}
		}
	}

	return nil
}

// entriesByName keys the entries of t by raw name bytes; a nil tree has no
// entries.
func entriesByName(t *Tree) map[string]*TreeEntry {
	if t == nil {
		return nil
	}

	m := make(map[string]*TreeEntry, len(t.Entries))
	for i := range t.Entries {
		m[t.Entries[i].Name] = &t.Entries[i]
	}

	return m
}

// treeSide returns whichever of the two classified entries is the subtree.
func treeSide(a, b classifiedEntry) classifiedEntry {
	if a.class == classTree {
		return a
	}

	return b
}

// appendPath copies the accumulated components instead of extending them
// in place, so sibling recursions never share a backing array.
func appendPath(current []string, name string) []string {
	p := make([]string, len(current)+1)
	copy(p, current)
	p[len(current)] = name

	return p
}

func joinPath(components []string) string {
	return strings.Join(components, "/")
}
