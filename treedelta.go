package treedelta

import (
	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/object"
	"github.com/go-treedelta/go-treedelta/plumbing/storer"
)

// Diff returns the set of paths whose content or mode differ between the
// trees with the given ids. A zero hash stands for an absent tree, e.g.
// the root tree of a snapshot with no parent.
func Diff(s storer.EncodedObjectStorer, lhs, rhs plumbing.Hash) (object.PathSet, error) {
	lhsTree, err := openTree(s, lhs)
	if err != nil {
		return nil, err
	}

	rhsTree, err := openTree(s, rhs)
	if err != nil {
		return nil, err
	}

	return object.ChangedPaths(s, lhsTree, rhsTree)
}

// Rebuild applies edits on top of the tree with the given id and returns
// the id of the resulting tree. A zero base stands for the empty tree.
func Rebuild(s storer.EncodedObjectStorer, base plumbing.Hash, edits object.Edits) (plumbing.Hash, error) {
	baseTree, err := openTree(s, base)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	return object.RebuildTree(s, baseTree, edits)
}

// Filter returns the id of a tree holding only the given paths of the tree
// with id h, with intermediate directories recreated as needed.
func Filter(s storer.EncodedObjectStorer, h plumbing.Hash, paths []string) (plumbing.Hash, error) {
	t, err := object.GetTree(s, h)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	return object.FilterTree(s, t, paths)
}

func openTree(s storer.EncodedObjectStorer, h plumbing.Hash) (*object.Tree, error) {
	if h.IsZero() {
		return nil, nil
	}

	return object.GetTree(s, h)
}
