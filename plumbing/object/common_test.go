package object

import (
	"github.com/stretchr/testify/suite"

	"github.com/go-treedelta/go-treedelta/plumbing"
	"github.com/go-treedelta/go-treedelta/plumbing/filemode"
	"github.com/go-treedelta/go-treedelta/storage/memory"
)

// BaseObjectsSuite provides a fresh in-memory storer per test plus helpers
// to populate it with blobs and trees.
type BaseObjectsSuite struct {
	suite.Suite

	Storer *memory.Storage
}

func (s *BaseObjectsSuite) SetupTest() {
	s.Storer = memory.NewStorage()
}

// blob writes content as a blob and returns its id.
func (s *BaseObjectsSuite) blob(content string) plumbing.Hash {
	h, err := WriteBlob(s.Storer, []byte(content))
	s.Require().NoError(err)
	return h
}

// tree builds a tree out of path -> blob content, all entries regular
// files.
func (s *BaseObjectsSuite) tree(files map[string]string) *Tree {
	edits := make(Edits, len(files))
	for path, content := range files {
		edits[path] = &Edit{Hash: s.blob(content), Mode: filemode.Regular}
	}

	return s.rebuild(nil, edits)
}

// rebuild runs RebuildTree and resolves the result.
func (s *BaseObjectsSuite) rebuild(base *Tree, edits Edits) *Tree {
	h, err := RebuildTree(s.Storer, base, edits)
	s.Require().NoError(err)

	t, err := GetTree(s.Storer, h)
	s.Require().NoError(err)
	return t
}

// treeOf writes a single-level tree with the given entries as-is.
func (s *BaseObjectsSuite) treeOf(entries ...TreeEntry) *Tree {
	b := NewTreeBuilder(s.Storer, nil)
	for _, e := range entries {
		b.Insert(e)
	}

	h, err := b.Write()
	s.Require().NoError(err)

	t, err := GetTree(s.Storer, h)
	s.Require().NoError(err)
	return t
}

// names returns the entry names of a tree, in stored order.
func names(t *Tree) []string {
	out := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		out = append(out, e.Name)
	}
	return out
}
