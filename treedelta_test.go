package treedelta

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/suite"

	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/filemode"
	"github.com/go-treedelta/go-treedelta/plumbing/object"
	"github.com/go-treedelta/go-treedelta/plumbing/storer"
	"github.com/go-treedelta/go-treedelta/storage/filesystem"
	"github.com/go-treedelta/go-treedelta/storage/memory"
)

// TreeDeltaSuite runs the exported API end to end. The suite is run once
// against the in-memory store and once against a filesystem store, the
// results must be identical.
type TreeDeltaSuite struct {
	suite.Suite

	newStorer func() (storer.EncodedObjectStorer, error)
	s         storer.EncodedObjectStorer
}

func TestTreeDeltaMemory(t *testing.T) {
	suite.Run(t, &TreeDeltaSuite{
		newStorer: func() (storer.EncodedObjectStorer, error) {
			return memory.NewStorage(), nil
		},
	})
}

func TestTreeDeltaFilesystem(t *testing.T) {
	suite.Run(t, &TreeDeltaSuite{
		newStorer: func() (storer.EncodedObjectStorer, error) {
			return filesystem.NewObjectStorage(memfs.New())
		},
	})
}

func (s *TreeDeltaSuite) SetupTest() {
	var err error
	s.s, err = s.newStorer()
	s.Require().NoError(err)
}

func (s *TreeDeltaSuite) blob(content string) plumbing.Hash {
	h, err := object.WriteBlob(s.s, []byte(content))
	s.Require().NoError(err)
	return h
}

func (s *TreeDeltaSuite) tree(files map[string]string) plumbing.Hash {
	edits := make(object.Edits, len(files))
	for path, content := range files {
		edits[path] = &object.Edit{Hash: s.blob(content), Mode: filemode.Regular}
	}

	h, err := Rebuild(s.s, plumbing.ZeroHash, edits)
	s.Require().NoError(err)
	return h
}

func (s *TreeDeltaSuite) diff(lhs, rhs plumbing.Hash) []string {
	changes, err := Diff(s.s, lhs, rhs)
	s.Require().NoError(err)
	return changes.Sorted()
}

func (s *TreeDeltaSuite) TestDiffIdentical() {
	t := s.tree(map[string]string{"a.txt": "a", "sub/b.txt": "b"})

	s.Empty(s.diff(t, t))
	s.Empty(s.diff(plumbing.ZeroHash, plumbing.ZeroHash))
}

func (s *TreeDeltaSuite) TestDiffAgainstZeroHash() {
	t := s.tree(map[string]string{"a.txt": "a", "sub/b.txt": "b"})

	want := []string{"a.txt", "sub/b.txt"}
	s.Equal(want, s.diff(plumbing.ZeroHash, t))
	s.Equal(want, s.diff(t, plumbing.ZeroHash))
}

func (s *TreeDeltaSuite) TestDiffIsSymmetric() {
	lhs := s.tree(map[string]string{
		"keep.txt":     "same",
		"gone.txt":     "bye",
		"sub/edit.txt": "one",
	})
	rhs := s.tree(map[string]string{
		"keep.txt":     "same",
		"new.txt":      "hi",
		"sub/edit.txt": "two",
	})

	want := []string{"gone.txt", "new.txt", "sub/edit.txt"}
	s.Equal(want, s.diff(lhs, rhs))
	s.Equal(want, s.diff(rhs, lhs))
}

func (s *TreeDeltaSuite) TestDiffExecutableBitOnly() {
	blob := s.blob("#!/bin/sh\nexit 0\n")

	lhs, err := Rebuild(s.s, plumbing.ZeroHash, object.Edits{
		"bin/run.sh": {Hash: blob, Mode: filemode.Regular},
	})
	s.Require().NoError(err)

	rhs, err := Rebuild(s.s, lhs, object.Edits{
		"bin/run.sh": {Hash: blob, Mode: filemode.Executable},
	})
	s.Require().NoError(err)

	s.Equal([]string{"bin/run.sh"}, s.diff(lhs, rhs))
}

func (s *TreeDeltaSuite) TestRebuildThenDiff() {
	base := s.tree(map[string]string{
		"foo.txt":     "foo",
		"bar/bar.txt": "bar",
		"bar/baz.txt": "qux",
	})

	next, err := Rebuild(s.s, base, object.Edits{
		"bar/baz.txt": {Hash: s.blob("changed"), Mode: filemode.Regular},
		"foo.txt":     nil,
	})
	s.Require().NoError(err)

	s.Equal([]string{"bar/baz.txt", "foo.txt"}, s.diff(base, next))
}

func (s *TreeDeltaSuite) TestRebuildDeleteMissingIsNoop() {
	base := s.tree(map[string]string{"a.txt": "a"})

	h, err := Rebuild(s.s, base, object.Edits{"nope.txt": nil})
	s.NoError(err)
	s.Equal(base, h)
}

func (s *TreeDeltaSuite) TestRebuildFromZeroHash() {
	h, err := Rebuild(s.s, plumbing.ZeroHash, object.Edits{
		"deep/nested/file.txt": {Hash: s.blob("x"), Mode: filemode.Regular},
	})
	s.NoError(err)

	t, err := object.GetTree(s.s, h)
	s.NoError(err)

	e, err := t.FindEntry("deep/nested/file.txt")
	s.NoError(err)
	s.Equal("file.txt", e.Name)
}

func (s *TreeDeltaSuite) TestFilter() {
	base := s.tree(map[string]string{
		"foo.txt":     "foo",
		"bar/bar.txt": "bar",
		"bar/baz.txt": "qux",
		"xyzzy.txt":   "xyzzy",
	})

	h, err := Filter(s.s, base, []string{"bar/baz.txt", "foo.txt", "missing.txt"})
	s.NoError(err)

	s.Equal([]string{"bar/bar.txt", "xyzzy.txt"}, s.diff(base, h))
}

func (s *TreeDeltaSuite) TestFilterEverything() {
	base := s.tree(map[string]string{"a.txt": "a", "b/c.txt": "c"})

	h, err := Filter(s.s, base, []string{"a.txt", "b/c.txt"})
	s.NoError(err)
	s.Equal(base, h)
}

func (s *TreeDeltaSuite) TestDiffMissingTree() {
	missing := plumbing.NewHash("feedfacefeedfacefeedfacefeedfacefeedface")

	_, err := Diff(s.s, missing, plumbing.ZeroHash)
	s.ErrorIs(err, plumbing.ErrObjectNotFound)
}
