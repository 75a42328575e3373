package plumbing

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type HashSuite struct {
	suite.Suite
}

func TestHashSuite(t *testing.T) {
	suite.Run(t, new(HashSuite))
}

func (s *HashSuite) TestComputeHash() {
	// well known ids: the empty blob and the empty tree
	h := ComputeHash(BlobObject, []byte(""))
	s.Equal("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", h.String())

	h = ComputeHash(TreeObject, []byte(""))
	s.Equal("4b825dc642cb6eb9a060e54bf8d69288fbee4904", h.String())
}

func (s *HashSuite) TestComputeHashTypeMatters() {
	content := []byte("same bytes")
	s.NotEqual(ComputeHash(BlobObject, content), ComputeHash(TreeObject, content))
}

func (s *HashSuite) TestNewHash() {
	h := ComputeHash(BlobObject, []byte("some content"))
	s.Equal(h, NewHash(h.String()))
}

func (s *HashSuite) TestNewHashInvalid() {
	s.Equal(ZeroHash, NewHash("not a hash"))
}

func (s *HashSuite) TestIsZero() {
	var h Hash
	s.True(h.IsZero())

	s.False(ComputeHash(BlobObject, []byte("")).IsZero())
}

func (s *HashSuite) TestHashesSort() {
	i := []Hash{
		NewHash("2222222222222222222222222222222222222222"),
		NewHash("1111111111111111111111111111111111111111"),
	}

	HashesSort(i)

	s.Equal(NewHash("1111111111111111111111111111111111111111"), i[0])
	s.Equal(NewHash("2222222222222222222222222222222222222222"), i[1])
}
